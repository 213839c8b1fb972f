package domain

// Role names assignable to back-office users.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// AuthenticatedUser is the in-memory profile of the signed-in operator,
// populated from the sign-in response or the profile endpoint.
type AuthenticatedUser struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Roles     []string
}

// HasRole reports whether the user carries the named role.
func (u AuthenticatedUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin is a derived predicate over the role set.
func (u AuthenticatedUser) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
