package user

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// Field names as stored in the user collection.
const (
	FieldEmail        = "email"
	FieldRole         = "role"
	FieldCreatedAt    = "created_at"
	FieldLastLoggedIn = "last_loggedIn"
)

// IsPrivileged reports whether role may be listed by /trainers-and-admins.
func IsPrivileged(role string) bool {
	return role == RoleTrainer || role == RoleAdmin
}

func IsValidRole(role string) bool {
	switch role {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}
