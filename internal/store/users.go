package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetUserByEmail looks up an activated user by email within the tenant.
func (s *Store) GetUserByEmail(ctx context.Context, tenantID int, email string) (*User, error) {
	return s.scanUser(s.queryRow(ctx,
		`SELECT id, tenant_id, email, password, display_name, status
		 FROM users WHERE tenant_id = ? AND email = ?`,
		tenantID, email,
	))
}

// GetUserByID looks up a user by id within the tenant.
func (s *Store) GetUserByID(ctx context.Context, tenantID, userID int) (*User, error) {
	return s.scanUser(s.queryRow(ctx,
		`SELECT id, tenant_id, email, password, display_name, status
		 FROM users WHERE tenant_id = ? AND id = ?`,
		tenantID, userID,
	))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var user User

	err := row.Scan(&user.ID, &user.TenantID, &user.Email, &user.Password, &user.DisplayName, &user.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("store: scan user: %w", err)
	}

	return &user, nil
}

// UserRoles returns the role tags assigned to the user within the tenant.
func (s *Store) UserRoles(ctx context.Context, tenantID, userID int) ([]string, error) {
	return s.stringColumn(ctx,
		`SELECT role FROM user_roles WHERE tenant_id = ? AND user_id = ? ORDER BY role`,
		tenantID, userID,
	)
}

// UserPermissions returns the per-user permission grants within the tenant.
// Role-derived defaults are layered on top by the identity service.
func (s *Store) UserPermissions(ctx context.Context, tenantID, userID int) ([]string, error) {
	return s.stringColumn(ctx,
		`SELECT permission FROM user_permissions WHERE tenant_id = ? AND user_id = ? ORDER BY permission`,
		tenantID, userID,
	)
}

func (s *Store) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var values []string

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}

		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}

	return values, nil
}
