package tenant

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tveterp/core"
	"tveterp/core/nav"
)

var (
	// errors
	ErrNotFound      = errors.New("tenant not found")
	ErrSlugExists    = errors.New("a tenant with this slug already exists")
	ErrUnknownModule = errors.New("unknown module")
)

type (
	Repository interface {
		CheckSlugUniqueness(slug string, excludedTenants ...Tenant) error
		CreateTenant(tnt Tenant) (Tenant, error)
		QueryAllTenants() ([]Tenant, error)
		GetTenantByID(id string) (Tenant, error)
		GetTenantBySlug(slug string) (Tenant, error)
		// FilterTenants applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Tenant.Name, Tenant.Slug or Tenant.Email.
		FilterTenants(filter QueryFilter) ([]Tenant, error)
		UpdateTenant(tnt Tenant, isActive *bool) (Tenant, error)
		DeleteTenantsByID(ids ...string) error
	}

	ServiceInterface interface {
		CheckSlugUniqueness(slug string, exclTenants ...Tenant) error
		Register(nt NewTenant) (Tenant, error)
		QueryAll() ([]Tenant, error)
		GetByID(id string) (Tenant, error)
		GetBySlug(slug string) (Tenant, error)
		Filter(filter QueryFilter) ([]Tenant, error)
		Update(id string, ut UpdateTenant) (Tenant, error)
		Delete(ids ...string) error
		SetModuleEnabled(id, moduleID string, enabled bool) (Tenant, error)
		Registry(tnt Tenant) *nav.Registry
		ProvisionPermissions(tnt Tenant) nav.PermissionMap
	}

	Service struct {
		reg     *nav.Registry
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(reg *nav.Registry, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{reg: reg, repo: repo, mailSvc: mailSvc}
}

func (svc *Service) CheckSlugUniqueness(slug string, exclTenants ...Tenant) error {
	if err := svc.repo.CheckSlugUniqueness(slug, exclTenants...); err != nil {
		if err == ErrSlugExists {
			return core.NewValidationError(err, core.FieldError{Field: "slug", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new Tenant and sends its welcome email. When the
// registration names specific modules, only those are enabled for the
// tenant; otherwise the platform defaults apply.
func (svc *Service) Register(nt NewTenant) (Tenant, error) {
	now := time.Now().UTC()
	tnt := Tenant{
		ID:         uuid.New().String(),
		Name:       nt.Name,
		Slug:       nt.Slug,
		Email:      nt.Email,
		Phone:      nt.Phone,
		Address:    nt.Address,
		ThemeColor: nt.ThemeColor,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(nt.Modules) > 0 {
		overrides := make(map[string]bool, len(svc.reg.Modules()))
		for _, mod := range svc.reg.Modules() {
			overrides[mod.ID] = false
		}
		for _, id := range nt.Modules {
			overrides[id] = true
		}
		tnt.EnabledModules = overrides
	}

	tnt, err := svc.repo.CreateTenant(tnt)
	if err != nil {
		return Tenant{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: tnt.Name, Address: tnt.Email}},
		Subject:      "Welcome to " + core.Conf.AppName,
		TemplateName: "tenant-welcome",
		TemplateData: struct{ Tenant Tenant }{tnt},
	})
	return tnt, nil
}

func (svc *Service) QueryAll() ([]Tenant, error) {
	return svc.repo.QueryAllTenants()
}

func (svc *Service) GetByID(id string) (Tenant, error) {
	return svc.repo.GetTenantByID(id)
}

func (svc *Service) GetBySlug(slug string) (Tenant, error) {
	return svc.repo.GetTenantBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *Service) Filter(filter QueryFilter) ([]Tenant, error) {
	return svc.repo.FilterTenants(filter)
}

func (svc *Service) Update(id string, ut UpdateTenant) (Tenant, error) {
	tnt := Tenant{
		ID:         id,
		Name:       ut.Name,
		Slug:       ut.Slug,
		Email:      ut.Email,
		Phone:      ut.Phone,
		Address:    ut.Address,
		ThemeColor: ut.ThemeColor,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateTenant(tnt, ut.IsActive)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteTenantsByID(ids...)
}

// SetModuleEnabled flips one module's enablement override for a tenant. The
// platform catalogue itself is never touched.
func (svc *Service) SetModuleEnabled(id, moduleID string, enabled bool) (Tenant, error) {
	if _, ok := svc.reg.ModuleByID(moduleID); !ok {
		return Tenant{}, core.NewValidationError(ErrUnknownModule, core.FieldError{Field: "module", Error: ErrUnknownModule.Error()})
	}

	tnt, err := svc.repo.GetTenantByID(id)
	if err != nil {
		return Tenant{}, err
	}
	if tnt.EnabledModules == nil {
		tnt.EnabledModules = make(map[string]bool)
	}
	tnt.EnabledModules[moduleID] = enabled
	tnt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTenant(tnt, nil)
}

// Registry derives the tenant's view of the module catalogue.
func (svc *Service) Registry(tnt Tenant) *nav.Registry {
	return tnt.Registry(svc.reg)
}

// ProvisionPermissions builds the permission map a tenant's first admin is
// provisioned with: every capability each of the tenant's enabled modules
// can grant.
func (svc *Service) ProvisionPermissions(tnt Tenant) nav.PermissionMap {
	perms := make(nav.PermissionMap)
	for _, mod := range svc.Registry(tnt).Modules() {
		if !mod.Enabled || len(mod.DefaultPermissions) == 0 {
			continue
		}
		caps := make([]nav.Capability, len(mod.DefaultPermissions))
		copy(caps, mod.DefaultPermissions)
		perms[mod.ID] = caps
	}
	return perms
}
