package models

// Role is the privilege level of a request-scoped actor.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleAIAgent  Role = "ai_agent"
)

// Actor identifies who is invoking an engine operation. It is passed
// explicitly into every call; the engine never reads ambient auth state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Trusted reports whether the actor may assert pre-computed amounts and
// terminal states (staff tooling and the AI booking adapter).
func (a Actor) Trusted() bool {
	return a.Role == RoleAdmin || a.Role == RoleAIAgent
}

// CreatorRole maps the actor onto the booking's created-by field.
func (a Actor) CreatorRole() CreatorRole {
	switch a.Role {
	case RoleAdmin:
		return CreatorAdmin
	case RoleAIAgent:
		return CreatorAIAgent
	default:
		return CreatorCustomer
	}
}
