package session

// Roles understood by the portal. CLIENTE is read-only.
const (
	RolAdmin     = "ADMIN"
	RolConsultor = "CONSULTOR"
	RolCliente   = "CLIENTE"
)

// Capabilities is the single place role-based UI and API gating is decided.
// Handlers and templates consume this instead of comparing role strings.
type Capabilities struct {
	CanCreate      bool `json:"can_create"`
	CanEdit        bool `json:"can_edit"`
	CanAdmin       bool `json:"can_admin"`
	CanExport      bool `json:"can_export"`
	CanViewDetails bool `json:"can_view_details"`
}

func CapabilitiesFor(rol string) Capabilities {
	caps := Capabilities{
		// Details and exports are view-level actions open to every role.
		CanExport:      true,
		CanViewDetails: true,
	}
	switch rol {
	case RolAdmin:
		caps.CanCreate = true
		caps.CanEdit = true
		caps.CanAdmin = true
	case RolConsultor:
		caps.CanCreate = true
		caps.CanEdit = true
	}
	return caps
}
