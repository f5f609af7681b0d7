package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"tveterp/core/tenant"
	"tveterp/core/user"
)

type tenantApi struct {
	opts *Options
}

// Tenant administration is reserved for platform operators, except module
// enablement reads which tenant admins need for their own settings screen.
func registerTenantAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := tenantApi{opts: opts}

	tg := g.Group("/tenants", jwt)

	super := adminMiddleware(user.RoleAdminSuper)

	tg.POST("", api.register, super)
	tg.GET("", api.query, super)
	tg.DELETE("", api.destroyMultiple, super)

	og := tg.Group("/:id")
	og.GET("", api.retrieve, super)
	og.PUT("", api.update, super)
	og.DELETE("", api.destroy, super)

	og.GET("/modules", api.queryModules, adminMiddleware())
	og.PUT("/modules/:moduleID", api.toggleModule, super)
	og.GET("/permissions", api.provisionPermissions, super)
}

func (api tenantApi) register(ctx echo.Context) error {
	var nt tenant.NewTenant
	if err := ctx.Bind(&nt); err != nil {
		return errors.Wrap(err, "binding new tenant")
	}
	if err := nt.Validate(api.opts.Validate, api.opts.TenantSvc); err != nil {
		return err
	}

	tnt, err := api.opts.TenantSvc.Register(nt)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, tnt)
}

func (api tenantApi) query(ctx echo.Context) error {
	var filter tenant.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding query filter")
	}
	filter.Clean()

	var tenants []tenant.Tenant
	var err error
	if filter.IsEmpty() {
		tenants, err = api.opts.TenantSvc.QueryAll()
	} else {
		tenants, err = api.opts.TenantSvc.Filter(filter)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tenants)
}

func (api tenantApi) getObject(ctx echo.Context) (tenant.Tenant, error) {
	tnt, err := api.opts.TenantSvc.GetByID(ctx.Param("id"))
	if err != nil {
		if err == tenant.ErrNotFound {
			return tenant.Tenant{}, errHttpNotFound
		}
		return tenant.Tenant{}, err
	}
	return tnt, nil
}

func (api tenantApi) retrieve(ctx echo.Context) error {
	tnt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tnt)
}

func (api tenantApi) update(ctx echo.Context) error {
	tnt, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var ut tenant.UpdateTenant
	if err := ctx.Bind(&ut); err != nil {
		return errors.Wrap(err, "binding tenant update")
	}
	if err := ut.Validate(api.opts.Validate, tnt, api.opts.TenantSvc); err != nil {
		return err
	}

	tnt, err = api.opts.TenantSvc.Update(tnt.ID, ut)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tnt)
}

func (api tenantApi) destroy(ctx echo.Context) error {
	tnt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	if err := api.opts.TenantSvc.Delete(tnt.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api tenantApi) destroyMultiple(ctx echo.Context) error {
	var req DeleteIDsRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding ids")
	}
	if err := req.Validate(api.opts.Validate); err != nil {
		return err
	}
	if err := api.opts.TenantSvc.Delete(req.IDs...); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// queryModules lists the tenant's view of the module catalogue, enablement
// included. Tenant admins may only read their own tenant.
func (api tenantApi) queryModules(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if !claims.IsSuperAdmin && claims.TenantID != ctx.Param("id") {
		return errHttpForbidden
	}

	tnt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.TenantSvc.Registry(tnt).Modules())
}

func (api tenantApi) toggleModule(ctx echo.Context) error {
	var req ModuleToggleRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding module toggle")
	}
	if err := req.Validate(api.opts.Validate); err != nil {
		return err
	}

	tnt, err := api.opts.TenantSvc.SetModuleEnabled(ctx.Param("id"), ctx.Param("moduleID"), *req.Enabled)
	if err != nil {
		if err == tenant.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, tnt)
}

func (api tenantApi) provisionPermissions(ctx echo.Context) error {
	tnt, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.TenantSvc.ProvisionPermissions(tnt))
}
