package nav

// Ribbons are the four fixed top-level navigation groupings. The set is
// closed; it is defined by the system, not configurable per tenant.
type Ribbon string

const (
	RibbonMain       Ribbon = "main"
	RibbonSetup      Ribbon = "setup"
	RibbonOperations Ribbon = "operations"
	RibbonReports    Ribbon = "reports"
)

// AllRibbons lists the ribbons in display order.
var AllRibbons = []Ribbon{RibbonMain, RibbonSetup, RibbonOperations, RibbonReports}

func (r Ribbon) Valid() bool {
	switch r {
	case RibbonMain, RibbonSetup, RibbonOperations, RibbonReports:
		return true
	}
	return false
}

// Capability is an atomic permission type. Capabilities are independent:
// there is no ordering or hierarchy among them.
type Capability string

const (
	CapView    Capability = "view"
	CapAdd     Capability = "add"
	CapEdit    Capability = "edit"
	CapDelete  Capability = "delete"
	CapApprove Capability = "approve"
	CapPost    Capability = "post"
	CapPrint   Capability = "print"
	CapExport  Capability = "export"
)

var AllCapabilities = []Capability{CapView, CapAdd, CapEdit, CapDelete, CapApprove, CapPost, CapPrint, CapExport}

func (c Capability) Valid() bool {
	switch c {
	case CapView, CapAdd, CapEdit, CapDelete, CapApprove, CapPost, CapPrint, CapExport:
		return true
	}
	return false
}

// MenuItem is one navigable entry contributed by a module to a ribbon.
// An item with no RequiredPermissions is visible to everyone.
type MenuItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	// Icon is a symbolic identifier resolved to a renderable component by
	// the consuming UI; the registry stays free of rendering types.
	Icon                string       `json:"icon,omitempty"`
	Badge               string       `json:"badge,omitempty"`
	RequiredPermissions []Capability `json:"required_permissions,omitempty"`
}

// Module is a self-contained ERP feature area (academic, finance, ...) with
// its own menu contributions and permission defaults.
type Module struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	// Enabled is the platform-level flag; a disabled module contributes no
	// menu items anywhere. Tenant-level overrides are applied through
	// Registry.WithOverrides, never by mutating the registry.
	Enabled             bool                  `json:"enabled"`
	RibbonContributions map[Ribbon][]MenuItem `json:"ribbon_contributions,omitempty"`
	// DefaultPermissions is the set of capabilities this module can grant.
	// It seeds tenant provisioning; the permission checker itself does not
	// consult it.
	DefaultPermissions []Capability `json:"default_permissions,omitempty"`
}

// Items returns the module's contribution to a ribbon, in display order.
func (m Module) Items(r Ribbon) []MenuItem {
	return m.RibbonContributions[r]
}
