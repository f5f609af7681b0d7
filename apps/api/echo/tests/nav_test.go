package tests

import (
	"net/http"
	"testing"

	"tveterp/core/nav"
	"tveterp/core/user"
	"tveterp/tests"
)

func item(label, href, icon string, caps ...nav.Capability) nav.MenuItem {
	return nav.MenuItem{Label: label, Href: href, Icon: icon, RequiredPermissions: caps}
}

func Test_navApi_ribbons(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "", "Hero", "studenthero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	studentToken := getToken(t, student)

	// the student holds view on academic, finance and library only; the
	// public Dashboard item shows regardless
	studentMain := []nav.MenuItem{
		item("Dashboard", "/dashboard", "layout-dashboard"),
		item("Programmes", "/academic/programmes", "book-open", nav.CapView),
		item("Classes", "/academic/classes", "presentation", nav.CapView),
		item("Timetable", "/academic/timetable", "calendar", nav.CapView),
		item("Fees", "/finance/fees", "receipt", nav.CapView),
		item("Catalogue", "/library/catalogue", "book", nav.CapView),
	}

	tests := []httpTest{
		{
			name: "Auth required", path: "/v1/nav/ribbons",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "All ribbons resolved", path: "/v1/nav/ribbons", token: studentToken,
			wantData: marshalObj(t, map[nav.Ribbon][]nav.MenuItem{
				nav.RibbonMain:  studentMain,
				nav.RibbonSetup: nil, // view alone opens no setup screen
				nav.RibbonOperations: {
					item("Attendance", "/academic/attendance", "check-square", nav.CapView, nav.CapAdd),
				},
				nav.RibbonReports: {
					item("Academic Reports", "/reports/academic", "file-chart", nav.CapView, nav.CapPrint),
				},
			}),
		},
		{
			name: "Single ribbon", path: "/v1/nav/ribbons/main", token: studentToken,
			wantData: marshalObj(t, studentMain),
		},
		{
			name: "Unknown ribbon", path: "/v1/nav/ribbons/bogus", token: studentToken,
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

func Test_navApi_ribbons_tenantOverrides(t *testing.T) {
	app := setup(t)

	// academic switched off for this tenant; its items must vanish from the
	// student's ribbons while the platform catalogue stays untouched
	tnt := testutil.CreateTenant(t, tntRepo, "Lubumbashi Poly", "lubum-poly", "info@lubum.cd",
		map[string]bool{"academic": false})
	student := testutil.CreateUser(t, usrRepo, tnt.ID, "Hero", "studenthero", "hero@test.cd", "", []string{user.RoleStudent}, true)

	tt := httpTest{
		name: "Disabled module contributes nothing", method: http.MethodGet,
		path: "/v1/nav/ribbons/main", token: getToken(t, student), wantCode: http.StatusOK,
		wantData: marshalObj(t, []nav.MenuItem{
			item("Dashboard", "/dashboard", "layout-dashboard"),
			item("Fees", "/finance/fees", "receipt", nav.CapView),
			item("Catalogue", "/library/catalogue", "book", nav.CapView),
		}),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_navApi_modules(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "", "Hero", "studenthero", "hero@test.cd", "", []string{user.RoleStudent}, true)

	// only the modules the student can view back the dashboard tiles
	accessible := make([]nav.Module, 0)
	for _, mod := range registry.Modules() {
		switch mod.ID {
		case "academic", "finance", "library":
			accessible = append(accessible, mod)
		}
	}

	tt := httpTest{
		name: "Accessible modules only", method: http.MethodGet, path: "/v1/nav/modules",
		token: getToken(t, student), wantCode: http.StatusOK, wantData: marshalObj(t, accessible),
	}
	t.Run(tt.name, func(t *testing.T) {
		req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_navApi_activeRibbon(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "", "Hero", "studenthero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	studentToken := getToken(t, student)

	tests := []httpTest{
		{
			name: "Missing path param", path: "/v1/nav/active-ribbon", token: studentToken,
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "path query parameter is required"}),
		},
		{
			name: "Operations route", path: "/v1/nav/active-ribbon?path=/finance/invoices/42", token: studentToken,
			wantData: marshalObj(t, map[string]nav.Ribbon{"ribbon": nav.RibbonOperations}),
		},
		{
			name: "Longest prefix wins", path: "/v1/nav/active-ribbon?path=/academic/grading", token: studentToken,
			wantData: marshalObj(t, map[string]nav.Ribbon{"ribbon": nav.RibbonSetup}),
		},
		{
			name: "Unknown route", path: "/v1/nav/active-ribbon?path=/nowhere", token: studentToken,
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
