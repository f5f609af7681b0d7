package nav

import "strings"

// FilterMenuItems returns the items of a single module's contribution that
// the given permission map may see, preserving input order.
//
// An item with no required permissions is always kept, regardless of the
// permission map ("public by default"). This is distinct from HasAny, whose
// empty-list result is false; substituting HasAny here would silently hide
// every permission-less item. Otherwise the item is kept iff the map grants
// at least one of its required capabilities for moduleID.
//
// The function is module-agnostic: it checks every item against the one
// moduleID it is given. Callers resolving a whole ribbon must filter each
// module's own items against that module's id before flattening; see
// ResolveRibbon.
func FilterMenuItems(items []MenuItem, perms PermissionMap, moduleID string) []MenuItem {
	kept := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if len(item.RequiredPermissions) == 0 {
			kept = append(kept, item)
			continue
		}
		if perms.HasAny(moduleID, item.RequiredPermissions) {
			kept = append(kept, item)
		}
	}
	return kept
}

// ResolveRibbon produces the exact sequence of menu items the given
// permission map may see in a ribbon: each enabled module's items are
// filtered against that module's own id, then concatenated in registry order.
func ResolveRibbon(reg *Registry, r Ribbon, perms PermissionMap) []MenuItem {
	var items []MenuItem
	for _, mod := range reg.ModulesByRibbon(r) {
		items = append(items, FilterMenuItems(mod.Items(r), perms, mod.ID)...)
	}
	return items
}

// ActiveRibbon finds the ribbon owning the menu item whose href is the
// longest prefix of the given route path. It reports false when no enabled
// module contributes an item matching the path.
func ActiveRibbon(reg *Registry, path string) (Ribbon, bool) {
	var (
		active  Ribbon
		found   bool
		longest int
	)
	for _, r := range AllRibbons {
		for _, item := range reg.MenuItemsForRibbon(r) {
			if item.Href == "" || !strings.HasPrefix(path, item.Href) {
				continue
			}
			if len(item.Href) > longest {
				active, found, longest = r, true, len(item.Href)
			}
		}
	}
	return active, found
}
