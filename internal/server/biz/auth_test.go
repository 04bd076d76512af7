package biz

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

func newTestServices(t *testing.T) (*AuthService, *IdentityService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	st := store.New(db, store.DialectSQLite)
	identity := NewIdentityService(IdentityServiceParams{Store: st})

	auth, err := NewAuthService(AuthServiceParams{
		Config: AuthConfig{
			SecretKey: strings.Repeat("ab", 32),
			TokenTTL:  time.Hour,
		},
		Store:           st,
		IdentityService: identity,
	})
	require.NoError(t, err)

	return auth, identity, mock
}

func expectGrants(mock sqlmock.Sqlmock, tenantID, userID int, roles, permissions []string) {
	roleRows := sqlmock.NewRows([]string{"role"})
	for _, role := range roles {
		roleRows.AddRow(role)
	}

	mock.ExpectQuery(`SELECT role FROM user_roles`).
		WithArgs(tenantID, userID).
		WillReturnRows(roleRows)

	permRows := sqlmock.NewRows([]string{"permission"})
	for _, permission := range permissions {
		permRows.AddRow(permission)
	}

	mock.ExpectQuery(`SELECT permission FROM user_permissions`).
		WithArgs(tenantID, userID).
		WillReturnRows(permRows)
}

func expectActivatedUser(mock sqlmock.Sqlmock, tenantID, userID int) {
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "password", "display_name", "status"}).
		AddRow(userID, tenantID, "t@example.com", "", "Teacher", store.UserStatusActivated)
	mock.ExpectQuery(`SELECT id, tenant_id, email, password, display_name, status`).
		WithArgs(tenantID, userID).
		WillReturnRows(rows)
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)

	assert.NoError(t, VerifyPassword(hashed, "s3cret"))
	assert.Error(t, VerifyPassword(hashed, "wrong"))
}

func TestGenerateSecretKey(t *testing.T) {
	key, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, key, 64)

	other, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestAuthenticateUser(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		auth, _, mock := newTestServices(t)

		hashed, err := HashPassword("s3cret")
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "password", "display_name", "status"}).
			AddRow(7, 1, "t@example.com", hashed, "Teacher", store.UserStatusActivated)
		mock.ExpectQuery(`SELECT id, tenant_id, email, password, display_name, status`).
			WithArgs(1, "t@example.com").
			WillReturnRows(rows)

		user, err := auth.AuthenticateUser(context.Background(), 1, "t@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		auth, _, mock := newTestServices(t)

		hashed, err := HashPassword("s3cret")
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "password", "display_name", "status"}).
			AddRow(7, 1, "t@example.com", hashed, "Teacher", store.UserStatusActivated)
		mock.ExpectQuery(`SELECT id, tenant_id, email, password, display_name, status`).
			WithArgs(1, "t@example.com").
			WillReturnRows(rows)

		_, err = auth.AuthenticateUser(context.Background(), 1, "t@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown email reads like wrong password", func(t *testing.T) {
		auth, _, mock := newTestServices(t)

		mock.ExpectQuery(`SELECT id, tenant_id, email, password, display_name, status`).
			WithArgs(1, "nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := auth.AuthenticateUser(context.Background(), 1, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestJWTTokenRoundTrip(t *testing.T) {
	auth, _, mock := newTestServices(t)

	expectGrants(mock, 1, 7, []string{"teacher"}, nil)

	token, err := auth.GenerateJWTToken(context.Background(), &store.User{ID: 7, TenantID: 1})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	expectActivatedUser(mock, 1, 7)

	ident, err := auth.AuthenticateJWTToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 7, ident.UserID)
	assert.Equal(t, 1, ident.TenantID)
	assert.True(t, ident.HasRole(authz.RoleTeacher))
	assert.True(t, ident.HasPermission(authz.PermissionGradesCreate))
	assert.False(t, ident.IsAdmin())
}

func TestAuthenticateJWTToken_Garbage(t *testing.T) {
	auth, _, _ := newTestServices(t)

	_, err := auth.AuthenticateJWTToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWT)
}

func TestRevokeToken(t *testing.T) {
	auth, _, mock := newTestServices(t)

	expectGrants(mock, 1, 7, []string{"teacher"}, nil)

	token, err := auth.GenerateJWTToken(context.Background(), &store.User{ID: 7, TenantID: 1})
	require.NoError(t, err)

	require.NoError(t, auth.RevokeToken(context.Background(), token))

	_, err = auth.AuthenticateJWTToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWT)

	// The revocation cache holds the entry until the token's expiry.
	assert.Equal(t, 1, auth.PurgeRevocations())
}
