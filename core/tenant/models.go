package tenant

import (
	"time"

	"github.com/go-playground/validator/v10"

	"tveterp/core"
	"tveterp/core/nav"
)

// Tenant is one registered institution. Module enablement and theming are
// per-tenant settings layered over the platform module catalogue.
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`

	// settings
	ThemeColor string `json:"theme_color,omitempty"` // hex; the UI derives its palette from it

	// EnabledModules overrides the platform-level module flags for this
	// tenant. Modules absent from the map keep the platform default.
	EnabledModules map[string]bool `json:"enabled_modules,omitempty"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Registry derives this tenant's view of the module catalogue.
func (t Tenant) Registry(base *nav.Registry) *nav.Registry {
	return base.WithOverrides(t.EnabledModules)
}

// NewTenant contains information needed to register a new Tenant.
type NewTenant struct {
	Name       string   `json:"name" validate:"required"`
	Slug       string   `json:"slug" validate:"required,slug"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	ThemeColor string   `json:"theme_color" validate:"omitempty,hexcolor_"`
	Modules    []string `json:"modules" validate:"omitempty,allmodules"` // module ids to enable; empty means platform defaults
}

func (nt *NewTenant) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Slug = core.CleanString(nt.Slug, true /* lower */)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckSlugUniqueness(nt.Slug)
}

// UpdateTenant defines what information may be provided to modify an existing Tenant.
type UpdateTenant struct {
	Name       string `json:"name"`
	Slug       string `json:"slug" validate:"omitempty,slug"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ThemeColor string `json:"theme_color" validate:"omitempty,hexcolor_"`
	IsActive   *bool  `json:"is_active"`
}

func (ut *UpdateTenant) Validate(validate *validator.Validate, orig Tenant, svc ServiceInterface) error {
	name := core.CleanString(ut.Name)
	if name != "" {
		ut.Name = name
	} else {
		ut.Name = orig.Name
	}

	slug := core.CleanString(ut.Slug, true /* lower */)
	if slug != "" {
		ut.Slug = slug
	} else {
		ut.Slug = orig.Slug
	}

	email := core.CleanString(ut.Email, true /* lower */)
	if email != "" {
		ut.Email = email
	} else {
		ut.Email = orig.Email
	}

	if err := validate.Struct(ut); err != nil {
		return err
	}
	return svc.CheckSlugUniqueness(ut.Slug, orig)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
