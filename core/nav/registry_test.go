package nav

import (
	"reflect"
	"testing"
)

func testRegistry() *Registry {
	return NewRegistry(
		Module{
			ID:      "academic",
			Name:    "Academics",
			Enabled: true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Programmes", Href: "/academic/programmes", RequiredPermissions: []Capability{CapView}},
					{Label: "Classes", Href: "/academic/classes", RequiredPermissions: []Capability{CapView}},
				},
				RibbonReports: {
					{Label: "Academic Reports", Href: "/reports/academic", RequiredPermissions: []Capability{CapView, CapPrint}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit},
		},
		Module{
			ID:      "finance",
			Name:    "Finance",
			Enabled: true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Fees", Href: "/finance/fees", RequiredPermissions: []Capability{CapView}},
				},
				RibbonOperations: {
					{Label: "Payments", Href: "/finance/payments", RequiredPermissions: []Capability{CapPost}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapPost, CapPrint, CapExport},
		},
		Module{
			ID:      "elearning",
			Name:    "E-Learning",
			Enabled: false,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Courses", Href: "/elearning/courses", RequiredPermissions: []Capability{CapView}},
				},
			},
			DefaultPermissions: []Capability{CapView},
		},
	)
}

func moduleIDs(mods []Module) []string {
	ids := make([]string, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}

func itemLabels(items []MenuItem) []string {
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	return labels
}

func TestRegistry_ModulesByRibbon(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name            string
		ribbon          Ribbon
		includeDisabled bool
		want            []string
	}{
		{name: "enabled only excludes disabled modules", ribbon: RibbonMain, want: []string{"academic", "finance"}},
		{name: "disabled included on demand", ribbon: RibbonMain, includeDisabled: true, want: []string{"academic", "finance", "elearning"}},
		{name: "modules without contribution are excluded", ribbon: RibbonOperations, want: []string{"finance"}},
		{name: "empty ribbon", ribbon: RibbonSetup, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moduleIDs(reg.ModulesByRibbon(tt.ribbon, tt.includeDisabled))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ModulesByRibbon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ModulesByRibbon_neverIncludesDisabled(t *testing.T) {
	reg := testRegistry()
	for _, r := range AllRibbons {
		for _, mod := range reg.ModulesByRibbon(r) {
			if !mod.Enabled {
				t.Errorf("ModulesByRibbon(%q) included disabled module %q", r, mod.ID)
			}
		}
	}
}

func TestRegistry_ModuleByID(t *testing.T) {
	reg := testRegistry()

	if mod, ok := reg.ModuleByID("finance"); !ok || mod.Name != "Finance" {
		t.Errorf("ModuleByID(finance) = (%v, %v)", mod, ok)
	}
	if _, ok := reg.ModuleByID("transport"); ok {
		t.Error("ModuleByID(transport) found a module that does not exist")
	}
}

func TestRegistry_MenuItemsForRibbon(t *testing.T) {
	reg := testRegistry()

	// order is module-then-item, matching registry definition order
	want := []string{"Programmes", "Classes", "Fees"}
	got := itemLabels(reg.MenuItemsForRibbon(RibbonMain))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MenuItemsForRibbon(main) = %v, want %v", got, want)
	}

	if items := reg.MenuItemsForRibbon(RibbonSetup); len(items) != 0 {
		t.Errorf("MenuItemsForRibbon(setup) = %v, want empty", items)
	}
}

func TestRegistry_MenuItemsForRibbon_noDedup(t *testing.T) {
	reg := NewRegistry(
		Module{
			ID: "a", Enabled: true,
			RibbonContributions: map[Ribbon][]MenuItem{RibbonMain: {{Label: "Home", Href: "/home"}}},
		},
		Module{
			ID: "b", Enabled: true,
			RibbonContributions: map[Ribbon][]MenuItem{RibbonMain: {{Label: "Home", Href: "/home"}}},
		},
	)
	if items := reg.MenuItemsForRibbon(RibbonMain); len(items) != 2 {
		t.Errorf("duplicate hrefs must both appear; got %v", itemLabels(items))
	}
}

func TestRegistry_WithOverrides(t *testing.T) {
	reg := testRegistry()

	derived := reg.WithOverrides(map[string]bool{"finance": false, "elearning": true})

	want := []string{"academic", "elearning"}
	if got := moduleIDs(derived.ModulesByRibbon(RibbonMain)); !reflect.DeepEqual(got, want) {
		t.Errorf("derived ModulesByRibbon(main) = %v, want %v", got, want)
	}

	// base registry is untouched
	want = []string{"academic", "finance"}
	if got := moduleIDs(reg.ModulesByRibbon(RibbonMain)); !reflect.DeepEqual(got, want) {
		t.Errorf("base ModulesByRibbon(main) = %v, want %v", got, want)
	}

	// no overrides: same registry comes back
	if reg.WithOverrides(nil) != reg {
		t.Error("WithOverrides(nil) must return the receiver")
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	if _, ok := reg.ModuleByID("system"); !ok {
		t.Error("default registry is missing the system module")
	}
	for _, mod := range reg.Modules() {
		for r, items := range mod.RibbonContributions {
			if !r.Valid() {
				t.Errorf("module %q contributes to unknown ribbon %q", mod.ID, r)
			}
			for _, item := range items {
				for _, c := range item.RequiredPermissions {
					if !c.Valid() {
						t.Errorf("module %q item %q requires unknown capability %q", mod.ID, item.Label, c)
					}
				}
			}
		}
		for _, c := range mod.DefaultPermissions {
			if !c.Valid() {
				t.Errorf("module %q grants unknown capability %q", mod.ID, c)
			}
		}
	}
}
