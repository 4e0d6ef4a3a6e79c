package authz

// Privilege is the compact capability level computed for UI rendering
// decisions. Capabilities are cumulative: Delete implies Update implies
// Create implies Read. OnlyCreate is the lateral exception, granting Create
// without Read (an actor may add notes to a client without being allowed to
// see the hidden ones already there).
type Privilege int

// Privilege levels in ascending capability order.
const (
	PrivilegeNone Privilege = iota
	PrivilegeRead
	PrivilegeOnlyCreate
	PrivilegeCreate
	PrivilegeUpdate
	PrivilegeDelete
)

// String returns the wire representation consumed by the frontend.
func (p Privilege) String() string {
	switch p {
	case PrivilegeRead:
		return "read"
	case PrivilegeOnlyCreate:
		return "only_create"
	case PrivilegeCreate:
		return "create"
	case PrivilegeUpdate:
		return "update"
	case PrivilegeDelete:
		return "delete"
	default:
		return "none"
	}
}

// Satisfies reports whether p grants the required capability. It is
// monotonic in the ascending order, except that OnlyCreate satisfies only
// Create and OnlyCreate requirements, never Read.
func (p Privilege) Satisfies(required Privilege) bool {
	if p == PrivilegeOnlyCreate {
		return required == PrivilegeCreate || required == PrivilegeOnlyCreate
	}
	if required == PrivilegeOnlyCreate {
		required = PrivilegeCreate
	}
	return p >= required
}
