package echoapi

import (
	"github.com/labstack/echo/v4"

	"tveterp/core/nav"
	"tveterp/core/user"
)

// adminMiddleware grants access to users bearing any of the provided roles;
// defaults to all admin roles when none are provided.
func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	if len(roles) == 0 {
		roles = user.AdminRoles
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// ctxUserOrAdminMiddleware loads the User referred to by the `id` path param
// into the context as "object". Non-admins may only access their own record.
func ctxUserOrAdminMiddleware(svc user.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}

			id := ctx.Param("id")
			if !(claims.IsAdmin || claims.Subject == id) {
				return errHttpForbidden
			}

			usr, err := svc.GetByID(id)
			if err != nil {
				if err == user.ErrNotFound {
					return errHttpNotFound
				}
				return err
			}
			// tenant admins cannot reach across tenants
			if claims.IsAdmin && !claims.IsSuperAdmin && usr.TenantID != claims.TenantID {
				return errHttpNotFound
			}
			ctx.Set("object", usr)
			return next(ctx)
		}
	}
}

// capabilityMiddleware requires the caller's permission map to grant any of
// the capabilities on the module. Super-admins pass unconditionally.
func capabilityMiddleware(moduleID string, caps ...nav.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsSuperAdmin {
				return next(ctx)
			}
			if claims.Perms.HasAny(moduleID, caps) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
