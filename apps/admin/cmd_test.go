package main

import (
	"bytes"
	"testing"

	"tveterp/core/nav"
	"tveterp/core/tenant"
	"tveterp/core/user"
	"tveterp/services/email"
	"tveterp/storage/database/inmem"
	"tveterp/tests"
)

var (
	usrRepo user.Repository
	tntRepo tenant.Repository
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	tntRepo = inmemdb.NewTenantRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock()

	// start CLI
	return &commandLine{
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo, mailSvc),
		tntSvc:  tenant.NewService(nav.DefaultRegistry(), tntRepo, mailSvc),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "", "User", "awe", "awe@test.cd", "mdr", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addTenant(t *testing.T) {
	cli := setup(t)

	testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)

	tests := []cliTest{
		{name: "no args", args: []string{"addtenant"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addtenant", "-name", "Goma Tech", "-slug", "goma-tech"}, wantErr: errHelp},
		{name: "duplicate slug", args: []string{"addtenant", "-name", "Kin Poly 2", "-slug", "kin-poly", "-email", "two@kinpoly.cd"}, wantErrStr: tenant.ErrSlugExists.Error()},
		{name: "registered", args: []string{"addtenant", "-name", "Goma Tech", "-slug", "goma-tech", "-email", "info@gomatech.cd"}},
		{name: "registered with modules", args: []string{"addtenant", "-name", "Bukavu Inst", "-slug", "bukavu-inst", "-email", "info@bukavu.cd", "-modules", "academic,finance"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
				return
			}
			if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() expected error, got nil")
			}
		})
	}

	// modules flag narrows enablement to the named modules
	tnt, err := tntRepo.GetTenantBySlug("bukavu-inst")
	if err != nil {
		t.Fatalf("GetTenantBySlug() failed, %v", err)
	}
	if enabled := tnt.EnabledModules["academic"]; !enabled {
		t.Error("academic should be enabled")
	}
	if enabled := tnt.EnabledModules["library"]; enabled {
		t.Error("library should be disabled")
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tnt := testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "newadmin"}, wantErr: errHelp},
		{name: "unknown tenant", args: []string{"adduser", "-username", "newadmin", "-tenant", "lol"}, extra: extra{pwd: "mdr"}, wantErr: tenant.ErrNotFound},
		{name: "created", args: []string{"adduser", "-username", "newadmin", "-email", "newadmin@test.cd", "-admin"}, extra: extra{pwd: "mdr"}},
		{name: "updated", args: []string{"adduser", "-username", "newadmin", "-email", "newadmin@test.cd", "-tenant", "kin-poly"}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil && err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := usrRepo.GetUserByUsername("newadmin")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed, %v", err)
	}
	if !usr.IsSuperAdmin() {
		t.Error("-admin should grant all roles")
	}
	if usr.TenantID != tnt.ID {
		t.Errorf("TenantID = %v; want %v", usr.TenantID, tnt.ID)
	}
}
