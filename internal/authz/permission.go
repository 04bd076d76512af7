package authz

import "slices"

// Permission is a fine-grained capability tag, namespaced as resource.action.
// Permissions are assigned per user per tenant.
type Permission string

// Available permissions in the system.
const (
	// PermissionGradesList read grade records of a section.
	PermissionGradesList Permission = "grades.list"
	// PermissionGradesCreate create grade records for a section.
	PermissionGradesCreate Permission = "grades.create"

	// PermissionStudentsGet read a student record.
	PermissionStudentsGet Permission = "students.get"

	// PermissionPaymentsGet read a payment record.
	PermissionPaymentsGet Permission = "payments.get"

	// PermissionUsersGet read a user profile.
	PermissionUsersGet Permission = "users.get"

	// PermissionEnrollmentsWrite manage teaching assignments and guardian links.
	PermissionEnrollmentsWrite Permission = "enrollments.write"
)

type PermissionSpec struct {
	Slug        Permission
	Description string
	// DefaultRoles are the roles granted this permission when a user has no
	// per-user grant of their own.
	DefaultRoles []Role
}

// permissionConfigs defines all available permissions with their configurations.
var permissionConfigs = []PermissionSpec{
	{
		Slug:         PermissionGradesList,
		Description:  "View grade records",
		DefaultRoles: []Role{RoleAdmin, RoleTeacher, RoleGradeManager},
	},
	{
		Slug:         PermissionGradesCreate,
		Description:  "Create grade records",
		DefaultRoles: []Role{RoleAdmin, RoleTeacher, RoleGradeManager},
	},
	{
		Slug:         PermissionStudentsGet,
		Description:  "View student records",
		DefaultRoles: []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleGuardian},
	},
	{
		Slug:         PermissionPaymentsGet,
		Description:  "View payment records",
		DefaultRoles: []Role{RoleAdmin, RoleGuardian},
	},
	{
		Slug:         PermissionUsersGet,
		Description:  "View user profiles",
		DefaultRoles: []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleGuardian, RoleGradeManager},
	},
	{
		Slug:         PermissionEnrollmentsWrite,
		Description:  "Manage teaching assignments and guardian links",
		DefaultRoles: []Role{RoleAdmin},
	},
}

// PermissionCatalog returns all available permissions.
func PermissionCatalog() []PermissionSpec {
	return slices.Clone(permissionConfigs)
}

// IsValidPermission checks if a permission tag is valid.
func IsValidPermission(permission string) bool {
	for _, spec := range permissionConfigs {
		if string(spec.Slug) == permission {
			return true
		}
	}

	return false
}

// DefaultPermissions returns the permissions granted to the given roles by
// the catalog, deduplicated, in catalog order.
func DefaultPermissions(roles ...Role) []Permission {
	perms := make([]Permission, 0, len(permissionConfigs))

	for _, spec := range permissionConfigs {
		for _, role := range roles {
			if slices.Contains(spec.DefaultRoles, role) {
				perms = append(perms, spec.Slug)
				break
			}
		}
	}

	return perms
}
