package inmemdb

import (
	"sync"

	"tveterp/core/tenant"
	"tveterp/core/user"
)

// DB is the in-memory store backing the domain repositories. Each table is
// guarded by its own RWMutex; values are stored by pointer and copied out on
// read so callers never share table memory.
type DB struct {
	user   *userTable
	tenant *tenantTable
}

type userTable struct {
	mutex sync.RWMutex
	table map[string]*user.User
}

type tenantTable struct {
	mutex sync.RWMutex
	table map[string]*tenant.Tenant
}

func Open() *DB {
	return &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		tenant: &tenantTable{table: make(map[string]*tenant.Tenant)},
	}
}
