package nav

// Registry holds the canonical, ordered list of modules. It is built once at
// startup and treated as immutable thereafter; consumers receive it by
// injection. Per-tenant enable/disable state is expressed as a derived
// registry (WithOverrides), never as in-place mutation.
type Registry struct {
	modules []Module
	index   map[string]int // module id -> position in modules
}

// NewRegistry builds a Registry from the given modules, preserving their
// definition order. The modules slice is copied.
func NewRegistry(modules ...Module) *Registry {
	reg := &Registry{
		modules: make([]Module, len(modules)),
		index:   make(map[string]int, len(modules)),
	}
	copy(reg.modules, modules)
	for i, mod := range reg.modules {
		reg.index[mod.ID] = i
	}
	return reg
}

// Modules returns all registered modules in definition order.
func (reg *Registry) Modules() []Module {
	mods := make([]Module, len(reg.modules))
	copy(mods, reg.modules)
	return mods
}

// ModuleByID does an exact-match lookup by module id.
func (reg *Registry) ModuleByID(id string) (Module, bool) {
	if i, ok := reg.index[id]; ok {
		return reg.modules[i], true
	}
	return Module{}, false
}

// ModulesByRibbon returns, in definition order, every module contributing at
// least one menu item to the given ribbon. Disabled modules are excluded
// unless includeDisabled is passed.
func (reg *Registry) ModulesByRibbon(r Ribbon, includeDisabled ...bool) []Module {
	withDisabled := len(includeDisabled) > 0 && includeDisabled[0]

	mods := make([]Module, 0, len(reg.modules))
	for _, mod := range reg.modules {
		if !mod.Enabled && !withDisabled {
			continue
		}
		if len(mod.Items(r)) == 0 {
			continue
		}
		mods = append(mods, mod)
	}
	return mods
}

// MenuItemsForRibbon flattens the menu items of every module contributing to
// the given ribbon: module order first, item order within each module second.
// No deduplication is performed.
func (reg *Registry) MenuItemsForRibbon(r Ribbon, includeDisabled ...bool) []MenuItem {
	var items []MenuItem
	for _, mod := range reg.ModulesByRibbon(r, includeDisabled...) {
		items = append(items, mod.Items(r)...)
	}
	return items
}

// WithOverrides derives a new Registry with per-module Enabled flags replaced
// by the given overrides. Modules absent from the overrides keep their
// platform-level flag. The receiver is left untouched.
func (reg *Registry) WithOverrides(enabled map[string]bool) *Registry {
	if len(enabled) == 0 {
		return reg
	}
	mods := reg.Modules()
	for i, mod := range mods {
		if on, ok := enabled[mod.ID]; ok {
			mods[i].Enabled = on
		}
	}
	return NewRegistry(mods...)
}
