package biz

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

func newTestIdentityService(t *testing.T) (*IdentityService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return NewIdentityService(IdentityServiceParams{Store: store.New(db, store.DialectSQLite)}), mock
}

func TestRolesAndPermissions(t *testing.T) {
	t.Run("role defaults plus per-user grants", func(t *testing.T) {
		identity, mock := newTestIdentityService(t)

		expectGrants(mock, 1, 9, []string{"guardian"}, []string{"grades.list"})

		roles, permissions, err := identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)
		assert.Equal(t, []authz.Role{authz.RoleGuardian}, roles)
		// Guardian defaults plus the explicit grades.list grant.
		assert.Contains(t, permissions, authz.PermissionStudentsGet)
		assert.Contains(t, permissions, authz.PermissionPaymentsGet)
		assert.Contains(t, permissions, authz.PermissionGradesList)
		assert.NotContains(t, permissions, authz.PermissionGradesCreate)
	})

	t.Run("unknown tags are dropped", func(t *testing.T) {
		identity, mock := newTestIdentityService(t)

		expectGrants(mock, 1, 9, []string{"guardian", "superhero"}, []string{"grades.nuke"})

		roles, permissions, err := identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)
		assert.Equal(t, []authz.Role{authz.RoleGuardian}, roles)
		assert.NotContains(t, permissions, authz.Permission("grades.nuke"))
	})

	t.Run("grants are cached", func(t *testing.T) {
		identity, mock := newTestIdentityService(t)

		expectGrants(mock, 1, 9, []string{"guardian"}, nil)

		_, _, err := identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)

		// No further expectations: the second read must hit the cache.
		_, _, err = identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalidate forces a re-read", func(t *testing.T) {
		identity, mock := newTestIdentityService(t)

		expectGrants(mock, 1, 9, []string{"guardian"}, nil)

		_, _, err := identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)

		identity.Invalidate(1, 9)

		expectGrants(mock, 1, 9, []string{"guardian", "teacher"}, nil)

		roles, _, err := identity.RolesAndPermissions(context.Background(), 1, 9)
		require.NoError(t, err)
		assert.Len(t, roles, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
