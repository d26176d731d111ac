package service

// Role is the capability level resolved once at authentication time and
// passed explicitly into moderation calls.
type Role string

// Known roles.
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// CanReview reports whether the role carries the moderation capability.
func (r Role) CanReview() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   uint
	Role Role
}
