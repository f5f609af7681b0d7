package nav

// DefaultRegistry builds the stock module catalogue of the ERP. Tenants
// derive their own view of it through Registry.WithOverrides.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Module{
			ID:          "system",
			Name:        "System",
			Description: "Institution profile, users, roles and module management",
			Icon:        "settings",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					// visible to every signed-in user
					{Label: "Dashboard", Href: "/dashboard", Icon: "layout-dashboard"},
				},
				RibbonSetup: {
					{Label: "Institution Profile", Href: "/system/profile", Icon: "building", RequiredPermissions: []Capability{CapView}},
					{Label: "Users", Href: "/system/users", Icon: "users", RequiredPermissions: []Capability{CapView}},
					{Label: "Roles & Permissions", Href: "/system/roles", Icon: "shield", RequiredPermissions: []Capability{CapView, CapEdit}},
					{Label: "Modules", Href: "/system/modules", Icon: "grid", RequiredPermissions: []Capability{CapEdit}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete},
		},
		Module{
			ID:          "academic",
			Name:        "Academics",
			Description: "Programmes, classes, timetables and assessments",
			Icon:        "graduation-cap",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Programmes", Href: "/academic/programmes", Icon: "book-open", RequiredPermissions: []Capability{CapView}},
					{Label: "Classes", Href: "/academic/classes", Icon: "presentation", RequiredPermissions: []Capability{CapView}},
					{Label: "Timetable", Href: "/academic/timetable", Icon: "calendar", RequiredPermissions: []Capability{CapView}},
				},
				RibbonSetup: {
					{Label: "Academic Years", Href: "/academic/years", Icon: "calendar-range", RequiredPermissions: []Capability{CapAdd, CapEdit}},
					{Label: "Grading Schemes", Href: "/academic/grading", Icon: "scale", RequiredPermissions: []Capability{CapEdit}},
				},
				RibbonOperations: {
					{Label: "Attendance", Href: "/academic/attendance", Icon: "check-square", RequiredPermissions: []Capability{CapView, CapAdd}},
					{Label: "Assessments", Href: "/academic/assessments", Icon: "clipboard-list", RequiredPermissions: []Capability{CapAdd, CapEdit}},
				},
				RibbonReports: {
					{Label: "Academic Reports", Href: "/reports/academic", Icon: "file-chart", RequiredPermissions: []Capability{CapView, CapPrint}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete, CapApprove, CapPrint, CapExport},
		},
		Module{
			ID:          "admissions",
			Name:        "Admissions",
			Description: "Applications and enrolment",
			Icon:        "user-plus",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Applications", Href: "/admissions/applications", Icon: "inbox", Badge: "new", RequiredPermissions: []Capability{CapView}},
				},
				RibbonOperations: {
					{Label: "Enrolment", Href: "/admissions/enrolment", Icon: "user-check", RequiredPermissions: []Capability{CapAdd, CapApprove}},
				},
				RibbonReports: {
					{Label: "Admission Reports", Href: "/reports/admissions", Icon: "file-chart", RequiredPermissions: []Capability{CapView, CapPrint}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete, CapApprove, CapPrint, CapExport},
		},
		Module{
			ID:          "finance",
			Name:        "Finance",
			Description: "Fees, invoicing and payments",
			Icon:        "banknote",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Fees", Href: "/finance/fees", Icon: "receipt", RequiredPermissions: []Capability{CapView}},
				},
				RibbonSetup: {
					{Label: "Fee Structures", Href: "/finance/structures", Icon: "list-tree", RequiredPermissions: []Capability{CapEdit}},
				},
				RibbonOperations: {
					{Label: "Invoices", Href: "/finance/invoices", Icon: "file-text", RequiredPermissions: []Capability{CapAdd, CapEdit}},
					{Label: "Payments", Href: "/finance/payments", Icon: "credit-card", RequiredPermissions: []Capability{CapPost}},
				},
				RibbonReports: {
					{Label: "Financial Statements", Href: "/reports/finance", Icon: "bar-chart", RequiredPermissions: []Capability{CapPrint, CapExport}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapPost, CapPrint, CapExport},
		},
		Module{
			ID:          "hr",
			Name:        "Human Resources",
			Description: "Staff records and payroll",
			Icon:        "briefcase",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonSetup: {
					{Label: "Staff", Href: "/hr/staff", Icon: "id-card", RequiredPermissions: []Capability{CapView, CapAdd}},
				},
				RibbonOperations: {
					{Label: "Payroll", Href: "/hr/payroll", Icon: "wallet", RequiredPermissions: []Capability{CapPost, CapApprove}},
				},
				RibbonReports: {
					{Label: "HR Reports", Href: "/reports/hr", Icon: "file-chart", RequiredPermissions: []Capability{CapView, CapPrint}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete, CapApprove, CapPost, CapPrint, CapExport},
		},
		Module{
			ID:          "inventory",
			Name:        "Inventory",
			Description: "Stores and stock control",
			Icon:        "package",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonSetup: {
					{Label: "Stores", Href: "/inventory/stores", Icon: "warehouse", RequiredPermissions: []Capability{CapEdit}},
				},
				RibbonOperations: {
					{Label: "Stock", Href: "/inventory/stock", Icon: "boxes", RequiredPermissions: []Capability{CapView, CapAdd}},
				},
				RibbonReports: {
					{Label: "Stock Reports", Href: "/reports/inventory", Icon: "file-chart", RequiredPermissions: []Capability{CapView, CapExport}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete, CapExport},
		},
		Module{
			ID:          "library",
			Name:        "Library",
			Description: "Catalogue and circulation",
			Icon:        "library",
			Enabled:     true,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Catalogue", Href: "/library/catalogue", Icon: "book", RequiredPermissions: []Capability{CapView}},
				},
				RibbonOperations: {
					{Label: "Circulation", Href: "/library/circulation", Icon: "repeat", RequiredPermissions: []Capability{CapAdd, CapEdit}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit, CapDelete},
		},
		Module{
			ID:          "elearning",
			Name:        "E-Learning",
			Description: "Online course delivery (not yet rolled out)",
			Icon:        "monitor",
			Enabled:     false,
			RibbonContributions: map[Ribbon][]MenuItem{
				RibbonMain: {
					{Label: "Courses", Href: "/elearning/courses", Icon: "play-circle", RequiredPermissions: []Capability{CapView}},
				},
			},
			DefaultPermissions: []Capability{CapView, CapAdd, CapEdit},
		},
	)
}
