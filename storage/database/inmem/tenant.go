package inmemdb

import (
	"sort"

	"tveterp/core/tenant"
)

type tenantRepository struct {
	db *tenantTable
}

func NewTenantRepository(db *DB) tenant.Repository {
	return &tenantRepository{db: db.tenant}
}

func (repo *tenantRepository) query() []tenant.Tenant {
	tenants := make([]tenant.Tenant, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tenants = append(tenants, copyTenant(*t))
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].CreatedAt.Before(tenants[j].CreatedAt) })
	return tenants
}

func (repo *tenantRepository) CheckSlugUniqueness(slug string, excludedTenants ...tenant.Tenant) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	excluded := make(map[string]struct{}, len(excludedTenants))
	for _, tnt := range excludedTenants {
		excluded[tnt.ID] = struct{}{}
	}

	for _, tnt := range repo.query() {
		if _, ok := excluded[tnt.ID]; ok {
			continue
		}
		if tnt.Slug == slug {
			return tenant.ErrSlugExists
		}
	}
	return nil
}

func (repo *tenantRepository) CreateTenant(tnt tenant.Tenant) (tenant.Tenant, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	stored := copyTenant(tnt)
	repo.db.table[tnt.ID] = &stored
	return tnt, nil
}

func (repo *tenantRepository) QueryAllTenants() ([]tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *tenantRepository) GetTenantByID(id string) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tnt, ok := repo.db.table[id]; ok {
		return copyTenant(*tnt), nil
	}
	return tenant.Tenant{}, tenant.ErrNotFound
}

func (repo *tenantRepository) GetTenantBySlug(slug string) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, tnt := range repo.query() {
		if tnt.Slug == slug {
			return tnt, nil
		}
	}
	return tenant.Tenant{}, tenant.ErrNotFound
}

func (repo *tenantRepository) FilterTenants(filter tenant.QueryFilter) ([]tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	filter.Clean()
	if filter.IsEmpty() {
		return repo.query(), nil
	}

	matches := make([]tenant.Tenant, 0)
	for _, tnt := range repo.query() {
		if filter.Search != "" && !matchesSearch(filter.Search, tnt.Name, tnt.Slug, tnt.Email) {
			continue
		}
		if filter.IsActive != nil && tnt.IsActive != *filter.IsActive {
			continue
		}
		if !filter.CreatedFrom.IsZero() && tnt.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && tnt.CreatedAt.After(filter.CreatedTo) {
			continue
		}
		matches = append(matches, tnt)
	}
	return matches, nil
}

func (repo *tenantRepository) UpdateTenant(tnt tenant.Tenant, isActive *bool) (tenant.Tenant, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	orig, ok := repo.db.table[tnt.ID]
	if !ok {
		return tenant.Tenant{}, tenant.ErrNotFound
	}
	if tnt.Name != "" {
		orig.Name = tnt.Name
	}
	if tnt.Slug != "" {
		orig.Slug = tnt.Slug
	}
	if tnt.Email != "" {
		orig.Email = tnt.Email
	}
	if tnt.Phone != "" {
		orig.Phone = tnt.Phone
	}
	if tnt.Address != "" {
		orig.Address = tnt.Address
	}
	if tnt.ThemeColor != "" {
		orig.ThemeColor = tnt.ThemeColor
	}
	if tnt.EnabledModules != nil {
		orig.EnabledModules = copyOverrides(tnt.EnabledModules)
	}
	if isActive != nil {
		orig.IsActive = *isActive
	}
	if !tnt.UpdatedAt.IsZero() {
		orig.UpdatedAt = tnt.UpdatedAt
	}

	return copyTenant(*orig), nil
}

func (repo *tenantRepository) DeleteTenantsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

// copyTenant clones the override map so repository memory never leaks to callers.
func copyTenant(tnt tenant.Tenant) tenant.Tenant {
	tnt.EnabledModules = copyOverrides(tnt.EnabledModules)
	return tnt
}

func copyOverrides(overrides map[string]bool) map[string]bool {
	if overrides == nil {
		return nil
	}
	cp := make(map[string]bool, len(overrides))
	for k, v := range overrides {
		cp[k] = v
	}
	return cp
}
