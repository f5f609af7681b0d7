package user

import "tveterp/core/nav"

// Portal grant templates for the non-admin portals. Admins get every
// capability a module can grant (its DefaultPermissions); teachers and
// students get the listed subset, further intersected with what the module
// can actually grant.
var (
	teacherGrants = map[string][]nav.Capability{
		"academic":   {nav.CapView, nav.CapAdd, nav.CapEdit, nav.CapPrint},
		"admissions": {nav.CapView},
		"library":    {nav.CapView, nav.CapAdd},
	}

	studentGrants = map[string][]nav.Capability{
		"academic": {nav.CapView},
		"finance":  {nav.CapView},
		"library":  {nav.CapView},
	}
)

// PermissionMapFor derives the user's permission map from their roles and
// the given module registry. The navigation core treats the result as an
// opaque input; this function is the authority that produces it.
//
// Super-admins are granted against the whole catalogue, disabled modules
// included, since they manage module rollout itself. Everyone else is
// granted against enabled modules only.
func PermissionMapFor(usr User, reg *nav.Registry) nav.PermissionMap {
	perms := make(nav.PermissionMap)

	for _, mod := range reg.Modules() {
		if !mod.Enabled && !usr.IsSuperAdmin() {
			continue
		}

		var caps []nav.Capability
		switch {
		case usr.IsAdmin():
			caps = mod.DefaultPermissions
		case usr.IsTeacher():
			caps = intersect(mod.DefaultPermissions, teacherGrants[mod.ID])
		case usr.IsStudent():
			caps = intersect(mod.DefaultPermissions, studentGrants[mod.ID])
		}
		if len(caps) > 0 {
			perms[mod.ID] = caps
		}
	}
	return perms
}

func intersect(granted, wanted []nav.Capability) []nav.Capability {
	if len(wanted) == 0 {
		return nil
	}
	caps := make([]nav.Capability, 0, len(wanted))
	for _, c := range wanted {
		for _, g := range granted {
			if c == g {
				caps = append(caps, c)
				break
			}
		}
	}
	return caps
}
