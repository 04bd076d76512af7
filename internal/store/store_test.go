package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return New(db, DialectSQLite), mock
}

func TestExistsAssignment(t *testing.T) {
	t.Run("assignment present", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT 1 FROM teaching_assignments`).
			WithArgs(1, 7, 10, 3).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		ok, err := store.ExistsAssignment(context.Background(), 1, 7, 10, 3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row means false", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT 1 FROM teaching_assignments`).
			WithArgs(1, 7, 10, 4).
			WillReturnError(sql.ErrNoRows)

		ok, err := store.ExistsAssignment(context.Background(), 1, 7, 10, 4)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tenant id always bound", func(t *testing.T) {
		store, mock := newMockStore(t)

		// The first bound argument must be the tenant id; a lookup for the
		// same assignment under another tenant is a different query.
		mock.ExpectQuery(`SELECT 1 FROM teaching_assignments`).
			WithArgs(2, 7, 10, 3).
			WillReturnError(sql.ErrNoRows)

		ok, err := store.ExistsAssignment(context.Background(), 2, 7, 10, 3)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExistsGuardianRelation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT 1 FROM guardian_relations`).
		WithArgs(1, 7, 44).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := store.ExistsGuardianRelation(context.Background(), 1, 7, 44)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetStudent_CrossTenantShapesToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	// Student 44 exists only in tenant 2; tenant 1's query matches nothing
	// and the caller cannot tell that from a nonexistent id.
	mock.ExpectQuery(`SELECT id, tenant_id, user_id, first_name, last_name`).
		WithArgs(1, 44).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetStudent(context.Background(), 1, 44)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStudent(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "user_id", "first_name", "last_name"}).
		AddRow(44, 1, nil, "Ada", "Lovelace")
	mock.ExpectQuery(`SELECT id, tenant_id, user_id, first_name, last_name`).
		WithArgs(1, 44).
		WillReturnRows(rows)

	student, err := store.GetStudent(context.Background(), 1, 44)
	require.NoError(t, err)
	assert.Equal(t, 44, student.ID)
	assert.Equal(t, 1, student.TenantID)
	assert.Nil(t, student.UserID)
}

func TestStudentUserID(t *testing.T) {
	t.Run("linked student", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT user_id FROM students`).
			WithArgs(1, 44).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(30))

		userID, ok, err := store.StudentUserID(context.Background(), 1, 44)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 30, userID)
	})

	t.Run("student without a login", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT user_id FROM students`).
			WithArgs(1, 44).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(nil))

		_, ok, err := store.StudentUserID(context.Background(), 1, 44)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing or cross-tenant id", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT user_id FROM students`).
			WithArgs(2, 44).
			WillReturnError(sql.ErrNoRows)

		_, ok, err := store.StudentUserID(context.Background(), 2, 44)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetUserByEmail(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "password", "display_name", "status"}).
		AddRow(7, 1, "t@example.com", "abcd", "Teacher", UserStatusActivated)
	mock.ExpectQuery(`SELECT id, tenant_id, email, password, display_name, status`).
		WithArgs(1, "t@example.com").
		WillReturnRows(rows)

	user, err := store.GetUserByEmail(context.Background(), 1, "t@example.com")
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, UserStatusActivated, user.Status)
}

func TestUserPermissions(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"permission"}).
		AddRow("grades.create").
		AddRow("grades.list")
	mock.ExpectQuery(`SELECT permission FROM user_permissions`).
		WithArgs(1, 7).
		WillReturnRows(rows)

	perms, err := store.UserPermissions(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"grades.create", "grades.list"}, perms)
}

func TestCreateGrade(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO grades`).
		WithArgs(1, 44, 5, 2, "2026-S1", 92.5, 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	grade, err := store.CreateGrade(context.Background(), 1, &Grade{
		StudentID: 44,
		SectionID: 5,
		SubjectID: 2,
		Term:      "2026-S1",
		Score:     92.5,
		CreatedBy: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, grade.ID)
	assert.Equal(t, 1, grade.TenantID)
	assert.False(t, grade.CreatedAt.IsZero())
}

func TestCreateGrade_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	store := New(db, DialectPostgres)

	// Postgres reads the id back through RETURNING; the rebound placeholders
	// must be $N.
	mock.ExpectQuery(`INSERT INTO grades .+ VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\) RETURNING id`).
		WithArgs(1, 44, 5, 2, "2026-S1", 92.5, 7, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	grade, err := store.CreateGrade(context.Background(), 1, &Grade{
		StudentID: 44,
		SectionID: 5,
		SubjectID: 2,
		Term:      "2026-S1",
		Score:     92.5,
		CreatedBy: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGrade_LastInsertIdError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO grades`).
		WithArgs(1, 44, 5, 2, "2026-S1", 92.5, 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("LastInsertId is not supported")))

	// A driver that cannot report the id must fail loudly, never hand back a
	// grade with id 0.
	_, err := store.CreateGrade(context.Background(), 1, &Grade{
		StudentID: 44,
		SectionID: 5,
		SubjectID: 2,
		Term:      "2026-S1",
		Score:     92.5,
		CreatedBy: 7,
	})
	assert.Error(t, err)
}

func TestListGrades(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "student_id", "section_id", "subject_id", "term", "score", "created_by", "created_at",
	}).
		AddRow(1, 1, 44, 5, 2, "2026-S1", 92.5, 7, now).
		AddRow(2, 1, 45, 5, 2, "2026-S1", 81.0, 7, now)
	mock.ExpectQuery(`SELECT id, tenant_id, student_id`).
		WithArgs(1, 5, 2).
		WillReturnRows(rows)

	grades, err := store.ListGrades(context.Background(), 1, 5, 2)
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, 44, grades[0].StudentID)
}

func TestCreateGuardianRelation_CrossTenantStudent(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, tenant_id, user_id, first_name, last_name`).
		WithArgs(1, 44).
		WillReturnError(sql.ErrNoRows)

	err := store.CreateGuardianRelation(context.Background(), 1, 9, 44)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		query   string
		want    string
	}{
		{"sqlite passthrough", DialectSQLite, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{"mysql passthrough", DialectMySQL, "SELECT 1 WHERE a = ?", "SELECT 1 WHERE a = ?"},
		{"postgres numbering", DialectPostgres, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{dialect: tt.dialect}
			if got := s.rebind(tt.query); got != tt.want {
				t.Errorf("rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}
