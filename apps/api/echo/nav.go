package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tveterp/core/nav"
	"tveterp/core/tenant"
)

type navApi struct {
	opts *Options
}

// The navigation endpoints resolve what the authenticated caller may see:
// ribbons are filtered against the permission map carried in the caller's
// claims, over their tenant's view of the module catalogue.
func registerNavAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := navApi{opts: opts}

	ng := g.Group("/nav", jwt)
	ng.GET("/ribbons", api.queryRibbons)
	ng.GET("/ribbons/:ribbon", api.retrieveRibbon)
	ng.GET("/modules", api.queryModules)
	ng.GET("/active-ribbon", api.activeRibbon)
}

// registry resolves the caller's view of the module catalogue.
func (api navApi) registry(claims Claims) (*nav.Registry, error) {
	if claims.TenantID == "" {
		return api.opts.Registry, nil
	}
	tnt, err := api.opts.TenantSvc.GetByID(claims.TenantID)
	if err != nil {
		if err == tenant.ErrNotFound {
			return nil, errHttpNotFound
		}
		return nil, err
	}
	return api.opts.TenantSvc.Registry(tnt), nil
}

func (api navApi) queryRibbons(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reg, err := api.registry(claims)
	if err != nil {
		return err
	}

	ribbons := make(map[nav.Ribbon][]nav.MenuItem, len(nav.AllRibbons))
	for _, r := range nav.AllRibbons {
		ribbons[r] = nav.ResolveRibbon(reg, r, claims.Perms)
	}
	return ctx.JSON(http.StatusOK, ribbons)
}

func (api navApi) retrieveRibbon(ctx echo.Context) error {
	r := nav.Ribbon(ctx.Param("ribbon"))
	if !r.Valid() {
		return errHttpNotFound
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reg, err := api.registry(claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, nav.ResolveRibbon(reg, r, claims.Perms))
}

// queryModules lists the caller's enabled, accessible modules; the frontend
// builds its dashboard tiles from this.
func (api navApi) queryModules(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reg, err := api.registry(claims)
	if err != nil {
		return err
	}

	accessible := make([]nav.Module, 0)
	for _, mod := range reg.Modules() {
		if !mod.Enabled {
			continue
		}
		if claims.IsSuperAdmin || claims.Perms.CanAccess(mod.ID) {
			accessible = append(accessible, mod)
		}
	}
	return ctx.JSON(http.StatusOK, accessible)
}

func (api navApi) activeRibbon(ctx echo.Context) error {
	path := ctx.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reg, err := api.registry(claims)
	if err != nil {
		return err
	}

	r, ok := nav.ActiveRibbon(reg, path)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ribbon": r})
}
