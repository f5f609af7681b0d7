package nav

// PermissionMap maps a module id to the set of capabilities the acting user
// holds for that module. An absent module key means no access. The map is
// supplied by the auth layer and treated as an opaque read-only input here;
// all checks below are total functions with no side effects.
type PermissionMap map[string][]Capability

// Has reports whether the map grants the capability for the module.
func (pm PermissionMap) Has(moduleID string, cap Capability) bool {
	for _, c := range pm[moduleID] {
		if c == cap {
			return true
		}
	}
	return false
}

// HasAny reports whether the map grants at least one of the capabilities for
// the module (logical OR). An empty capability list yields false: the vacuous
// OR is false. Menu filtering deliberately does NOT use this for items
// without required permissions; see FilterMenuItems.
func (pm PermissionMap) HasAny(moduleID string, caps []Capability) bool {
	for _, c := range caps {
		if pm.Has(moduleID, c) {
			return true
		}
	}
	return false
}

// HasAll reports whether the map grants every one of the capabilities for the
// module (logical AND). An empty capability list yields true: the vacuous AND
// is true.
func (pm PermissionMap) HasAll(moduleID string, caps []Capability) bool {
	for _, c := range caps {
		if !pm.Has(moduleID, c) {
			return false
		}
	}
	return true
}

// CanAccess is sugar for Has(moduleID, CapView).
func (pm PermissionMap) CanAccess(moduleID string) bool {
	return pm.Has(moduleID, CapView)
}
