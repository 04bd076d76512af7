package biz

import (
	"fmt"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

// NewEngine wires the authorization engine: built-in policies over the store's
// lookup contracts, plus one requirement per authorizable request type. The
// registry validates policy names and request capabilities at build, so a
// misdeclared requirement fails startup instead of a live request.
func NewEngine(st *store.Store) (*authz.Engine, error) {
	builder := authz.NewRegistryBuilder().
		Policy(authz.NewTeacherAssignmentPolicy(st)).
		Policy(authz.NewSelfPolicy()).
		Policy(authz.NewGuardianPolicy(st)).
		Policy(authz.NewStudentAccessPolicy(st, st))

	builder.
		Request(CreateGradeCommand{},
			authz.AnyRole(authz.RoleAdmin, authz.RoleTeacher, authz.RoleGradeManager),
			authz.AllPermissions(authz.PermissionGradesCreate),
			authz.Policies(authz.PolicyTeacherOfClassOrAdmin),
		).
		Request(ListGradesQuery{},
			authz.AnyRole(authz.RoleAdmin, authz.RoleTeacher, authz.RoleGradeManager),
			authz.AllPermissions(authz.PermissionGradesList),
			authz.Policies(authz.PolicyTeacherOfClassOrAdmin),
		).
		Request(GetStudentQuery{},
			authz.AnyRole(authz.RoleAdmin, authz.RoleGuardian, authz.RoleStudent),
			authz.AllPermissions(authz.PermissionStudentsGet),
			authz.Policies(authz.PolicyGuardianOrSelfOfStudent),
		).
		Request(GetPaymentQuery{},
			authz.AnyRole(authz.RoleAdmin, authz.RoleGuardian),
			authz.AllPermissions(authz.PermissionPaymentsGet),
			authz.Policies(authz.PolicyGuardianOfStudent),
		).
		Request(GetUserQuery{},
			authz.AnyRole(authz.AllRoles()...),
			authz.AllPermissions(authz.PermissionUsersGet),
			authz.Policies(authz.PolicySelfOrAdmin),
		).
		Request(AssignTeacherCommand{},
			authz.AnyRole(authz.RoleAdmin),
			authz.AllPermissions(authz.PermissionEnrollmentsWrite),
		).
		Request(UnassignTeacherCommand{},
			authz.AnyRole(authz.RoleAdmin),
			authz.AllPermissions(authz.PermissionEnrollmentsWrite),
		).
		Request(LinkGuardianCommand{},
			authz.AnyRole(authz.RoleAdmin),
			authz.AllPermissions(authz.PermissionEnrollmentsWrite),
		)

	registry, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build authz registry: %w", err)
	}

	return authz.NewEngine(registry), nil
}
