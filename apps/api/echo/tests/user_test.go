package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "tveterp/apps/api/echo"
	"tveterp/core/user"
	"tveterp/tests"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "", "Hero", "studenthero", "hero@test.cd", "LeTriomphe2021", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, usrRepo, "", "N Dog", "ndog", "ndog@test.cd", "LeTriomphe2021", []string{user.RoleStudent}, false)

	tests := []httpTest{
		{
			name: "Unknown user", body: marshalObj(t, LoginRequestBody{Username: "ghost", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Wrong password", body: marshalObj(t, LoginRequestBody{Username: "studenthero", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Deactivated account", body: marshalObj(t, LoginRequestBody{Username: "ndog", Password: "LeTriomphe2021"}),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "Login by email", body: marshalObj(t, LoginRequestBody{Username: "hero@test.cd", Password: "LeTriomphe2021"}),
			wantCode: http.StatusOK,
		},
		{
			name: "Login by username", body: marshalObj(t, LoginRequestBody{Username: "studenthero", Password: "LeTriomphe2021"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users/login"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				var res struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshalling login response: %v", err)
				}
				if res.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

// LoginRequestBody mirrors the login payload; declared here to keep the
// tests package free of the api's internals.
type LoginRequestBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Test_userApi_query(t *testing.T) {
	app := setup(t)

	tnt1 := testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)
	tnt2 := testutil.CreateTenant(t, tntRepo, "Goma Tech", "goma-tech", "info@gomatech.cd", nil)

	super := testutil.CreateUser(t, usrRepo, "", "Root", "rootadmin", "root@test.cd", "", []string{user.RoleAdminSuper}, true)
	admin1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Admin One", "adminone", "one@kinpoly.cd", "", []string{user.RoleAdmin}, true)
	student1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Hero", "studenthero", "hero@kinpoly.cd", "", []string{user.RoleStudent}, true)
	student2 := testutil.CreateUser(t, usrRepo, tnt2.ID, "King", "studentking", "king@gomatech.cd", "", []string{user.RoleStudent}, true)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, student1),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "Tenant admin sees own tenant only", token: getToken(t, admin1),
			wantData: marshalList(t, admin1, student1),
		},
		{
			name: "Super admin sees all", token: getToken(t, super),
			wantData: marshalList(t, super, admin1, student1, student2),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/users"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_create(t *testing.T) {
	app := setup(t)

	tnt := testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)
	admin := testutil.CreateUser(t, usrRepo, tnt.ID, "Admin One", "adminone", "one@kinpoly.cd", "", []string{user.RoleAdmin}, true)
	student := testutil.CreateUser(t, usrRepo, tnt.ID, "Hero", "studenthero", "hero@kinpoly.cd", "", []string{user.RoleStudent}, true)

	newStudent := user.NewUser{
		Name:            "New Kid",
		Username:        "newkid01",
		Email:           "newkid@kinpoly.cd",
		Password:        "G0ma!Volcano#21",
		PasswordConfirm: "G0ma!Volcano#21",
		Roles:           []string{user.RoleStudent},
	}
	escalation := newStudent
	escalation.Roles = []string{user.RoleAdminSuper}

	tests := []httpTest{
		{
			name: "Admin required", token: getToken(t, student), body: marshalObj(t, newStudent),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "No role escalation", token: getToken(t, admin), body: marshalObj(t, escalation),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/users"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Created in admin's tenant", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users", getToken(t, admin), marshalObj(t, newStudent))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var created user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshalling created user: %v", err)
		}
		if created.TenantID != tnt.ID {
			t.Errorf("TenantID = %v; want %v", created.TenantID, tnt.ID)
		}
	})
}

func Test_userApi_destroyMultiple(t *testing.T) {
	app := setup(t)

	tnt1 := testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)
	tnt2 := testutil.CreateTenant(t, tntRepo, "Goma Tech", "goma-tech", "info@gomatech.cd", nil)

	super := testutil.CreateUser(t, usrRepo, "", "Root", "rootadmin", "root@test.cd", "", []string{user.RoleAdminSuper}, true)
	admin1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Admin One", "adminone", "one@kinpoly.cd", "", []string{user.RoleAdmin}, true)
	student1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Hero", "studenthero", "hero@kinpoly.cd", "", []string{user.RoleStudent}, true)
	student2 := testutil.CreateUser(t, usrRepo, tnt2.ID, "King", "studentking", "king@gomatech.cd", "", []string{user.RoleStudent}, true)
	student3 := testutil.CreateUser(t, usrRepo, tnt2.ID, "Queen", "studentqueen", "queen@gomatech.cd", "", []string{user.RoleStudent}, true)

	mustExist := func(t *testing.T, usr user.User) {
		t.Helper()
		if _, err := usrRepo.GetUserByID(usr.ID); err != nil {
			t.Errorf("user %v should still exist; err %v", usr.Username, err)
		}
	}
	mustBeGone := func(t *testing.T, usr user.User) {
		t.Helper()
		if _, err := usrRepo.GetUserByID(usr.ID); err != user.ErrNotFound {
			t.Errorf("user %v should be deleted; err %v", usr.Username, err)
		}
	}

	t.Run("Tenant admin cannot delete across tenants", func(t *testing.T) {
		body := marshalObj(t, DeleteIDsRequest{IDs: []string{student2.ID}})
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users", getToken(t, admin1), body)
		app.ServeHTTP(rec, req)

		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"}),
		}, rec)
		mustExist(t, student2)
	})

	t.Run("Mixed batch deletes nothing", func(t *testing.T) {
		body := marshalObj(t, DeleteIDsRequest{IDs: []string{student1.ID, student2.ID}})
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users", getToken(t, admin1), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
		mustExist(t, student1)
		mustExist(t, student2)
	})

	t.Run("Tenant admin deletes within own tenant", func(t *testing.T) {
		body := marshalObj(t, DeleteIDsRequest{IDs: []string{student1.ID}})
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users", getToken(t, admin1), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusNoContent, rec.Body.String())
		}
		mustBeGone(t, student1)
	})

	t.Run("Super admin deletes across tenants", func(t *testing.T) {
		body := marshalObj(t, DeleteIDsRequest{IDs: []string{student2.ID, student3.ID}})
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users", getToken(t, super), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusNoContent, rec.Body.String())
		}
		mustBeGone(t, student2)
		mustBeGone(t, student3)
	})
}

func Test_userApi_retrieve(t *testing.T) {
	app := setup(t)

	tnt1 := testutil.CreateTenant(t, tntRepo, "Kin Poly", "kin-poly", "info@kinpoly.cd", nil)
	tnt2 := testutil.CreateTenant(t, tntRepo, "Goma Tech", "goma-tech", "info@gomatech.cd", nil)

	admin1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Admin One", "adminone", "one@kinpoly.cd", "", []string{user.RoleAdmin}, true)
	student1 := testutil.CreateUser(t, usrRepo, tnt1.ID, "Hero", "studenthero", "hero@kinpoly.cd", "", []string{user.RoleStudent}, true)
	student2 := testutil.CreateUser(t, usrRepo, tnt2.ID, "King", "studentking", "king@gomatech.cd", "", []string{user.RoleStudent}, true)

	tests := []httpTest{
		{
			name: "Own record", path: "/v1/users/" + student1.ID, token: getToken(t, student1),
			wantData: marshalObj(t, student1),
		},
		{
			name: "Other's record forbidden", path: "/v1/users/" + student2.ID, token: getToken(t, student1),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "Admin within tenant", path: "/v1/users/" + student1.ID, token: getToken(t, admin1),
			wantData: marshalObj(t, student1),
		},
		{
			name: "Admin across tenants not found", path: "/v1/users/" + student2.ID, token: getToken(t, admin1),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
