package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"tveterp/core"
	"tveterp/core/tenant"
	"tveterp/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	tenantID, name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateTenant(
	t *testing.T,
	repo tenant.Repository,
	name, slug, email string,
	enabledModules map[string]bool,
	createdAt ...time.Time,
) tenant.Tenant {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	tnt := tenant.Tenant{
		ID:             uuid.New().String(),
		Name:           name,
		Slug:           slug,
		Email:          email,
		IsActive:       true,
		EnabledModules: enabledModules,
		CreatedAt:      tstamp,
		UpdatedAt:      tstamp,
	}
	tnt, err := repo.CreateTenant(tnt)
	if err != nil {
		t.Fatalf("CreateTenant(): %v", err)
	}
	return tnt
}

// NewNopLogger returns a logger that swallows everything; tests that assert
// on HTTP responses do not care about log output.
func NewNopLogger() core.Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
