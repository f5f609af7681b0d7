package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"tveterp/core/user"
)

type userApi struct {
	opts *Options
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := userApi{opts: opts}

	ug := g.Group("/users")

	// anonymous
	ug.POST("/login", api.login)
	ug.POST("/password-reset", api.resetPassword)
	ug.POST("/password-reset-confirm", api.confirmPasswordReset)

	// authed
	ug.POST("/token-refresh", api.refreshToken, jwt)
	ug.GET("/roles", api.queryRoles, jwt, adminMiddleware())
	ug.POST("", api.create, jwt, adminMiddleware())
	ug.GET("", api.query, jwt, adminMiddleware())
	ug.DELETE("", api.destroyMultiple, jwt, adminMiddleware())

	og := ug.Group("/:id", jwt, ctxUserOrAdminMiddleware(opts.UserSvc))
	og.GET("", api.retrieve)
	og.PUT("", api.update)
	og.DELETE("", api.destroy, adminMiddleware())
}

func (api userApi) login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding login request")
	}
	if err := req.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := authenticate(req.Username, req.Password, api.opts.UserSvc, api.opts.TenantSvc, api.opts.Registry)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api userApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.opts.UserSvc, api.opts.TenantSvc, api.opts.Registry)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api userApi) resetPassword(ctx echo.Context) error {
	var req PasswordResetRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding password reset request")
	}
	if err := req.Validate(api.opts.Validate); err != nil {
		return err
	}

	// do not leak account existence
	if err := api.opts.UserSvc.RequestPasswordReset(req.Email); err != nil && err != user.ErrNotFound {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})
}

func (api userApi) confirmPasswordReset(ctx echo.Context) error {
	var rp user.ResetUserPassword
	if err := ctx.Bind(&rp); err != nil {
		return errors.Wrap(err, "binding password reset confirmation")
	}
	if err := rp.Validate(api.opts.Validate); err != nil {
		return err
	}

	if err := api.opts.UserSvc.ResetPassword(rp); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password has been reset with the new password."})
}

func (api userApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api userApi) create(ctx echo.Context) error {
	var nu user.NewUser
	if err := ctx.Bind(&nu); err != nil {
		return errors.Wrap(err, "binding new user")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	// tenant admins create users within their own tenant, with no role
	// above their own
	if !claims.IsSuperAdmin {
		nu.TenantID = claims.TenantID
	}
	if user.MaxRolePriority(nu.Roles) > user.MaxRolePriority(claims.Roles) {
		return errHttpForbidden
	}

	if err := nu.Validate(api.opts.Validate, api.opts.UserSvc); err != nil {
		return err
	}
	usr, err := api.opts.UserSvc.Create(nu)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api userApi) query(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding query filter")
	}
	filter.Clean()

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if !claims.IsSuperAdmin {
		filter.TenantID = claims.TenantID
	}

	var users []user.User
	if filter.IsEmpty() {
		users, err = api.opts.UserSvc.QueryAll()
	} else {
		users, err = api.opts.UserSvc.Filter(filter)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api userApi) retrieve(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api userApi) update(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errHttpNotFound
	}

	var uu user.UpdateUser
	if err := ctx.Bind(&uu); err != nil {
		return errors.Wrap(err, "binding user update")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	// no privilege escalation via role assignment
	if user.MaxRolePriority(uu.Roles) > user.MaxRolePriority(claims.Roles) {
		return errHttpForbidden
	}
	// only admins may (de)activate or change roles
	if !claims.IsAdmin {
		uu.IsActive = nil
		uu.Roles = nil
	}

	if err := uu.Validate(api.opts.Validate, usr, api.opts.UserSvc); err != nil {
		return err
	}
	usr, err = api.opts.UserSvc.Update(usr.ID, uu)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api userApi) destroy(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errHttpNotFound
	}
	if err := api.opts.UserSvc.Delete(usr.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api userApi) destroyMultiple(ctx echo.Context) error {
	var req DeleteIDsRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding ids")
	}
	if err := req.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	// tenant admins cannot reach across tenants
	if !claims.IsSuperAdmin {
		for _, id := range req.IDs {
			usr, err := api.opts.UserSvc.GetByID(id)
			if err != nil {
				if err == user.ErrNotFound {
					return errHttpNotFound
				}
				return err
			}
			if usr.TenantID != claims.TenantID {
				return errHttpNotFound
			}
		}
	}

	if err := api.opts.UserSvc.Delete(req.IDs...); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
