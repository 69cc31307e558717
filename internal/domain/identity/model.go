package identity

// Role distinguishes moderators (registry administration, history clearing)
// from students (session participation only).
type Role string

const (
	RoleModerator Role = "moderator"
	RoleStudent   Role = "student"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleModerator || r == RoleStudent
}

// Identity is the signed-in user. It is established at login and held only
// for the lifetime of the session token, never persisted.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Credential is one username/password entry in a credential table.
type Credential struct {
	Username string
	Password string
	Role     Role
}
