package authz

import "slices"

// Role is a coarse-grained, tenant-scoped assignment tag. Role names are
// tenant-independent; a user's role applies only within their own tenant.
type Role string

const (
	// RoleAdmin is the administrative role. It bypasses every policy routine.
	RoleAdmin Role = "admin"
	// RoleTeacher marks teaching staff.
	RoleTeacher Role = "teacher"
	// RoleStudent marks enrolled students.
	RoleStudent Role = "student"
	// RoleGuardian marks guardians linked to one or more students.
	RoleGuardian Role = "guardian"
	// RoleGradeManager marks staff managing grade records across sections.
	RoleGradeManager Role = "grade_manager"
)

// allRoles lists every role the system assigns.
var allRoles = []Role{
	RoleAdmin,
	RoleTeacher,
	RoleStudent,
	RoleGuardian,
	RoleGradeManager,
}

// AllRoles returns all assignable roles.
func AllRoles() []Role {
	return slices.Clone(allRoles)
}

// IsValidRole checks if a role tag is known to the system.
func IsValidRole(role string) bool {
	return slices.Contains(allRoles, Role(role))
}

func (r Role) String() string {
	return string(r)
}
