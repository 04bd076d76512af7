package store

import (
	"context"
	"fmt"
)

// schemaStatements holds the portable DDL. Tenant ownership is structural:
// every tenant-owned table carries tenant_id and every unique key includes it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		tenant_id INTEGER NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'activated',
		UNIQUE (tenant_id, email)
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		tenant_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role VARCHAR(64) NOT NULL,
		UNIQUE (tenant_id, user_id, role)
	)`,
	`CREATE TABLE IF NOT EXISTS user_permissions (
		tenant_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		permission VARCHAR(128) NOT NULL,
		UNIQUE (tenant_id, user_id, permission)
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY,
		tenant_id INTEGER NOT NULL,
		user_id INTEGER,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teaching_assignments (
		tenant_id INTEGER NOT NULL,
		teacher_id INTEGER NOT NULL,
		section_id INTEGER NOT NULL,
		subject_id INTEGER NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (tenant_id, teacher_id, section_id, subject_id)
	)`,
	`CREATE TABLE IF NOT EXISTS guardian_relations (
		tenant_id INTEGER NOT NULL,
		guardian_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		UNIQUE (tenant_id, guardian_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS grades (
		id INTEGER PRIMARY KEY,
		tenant_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		section_id INTEGER NOT NULL,
		subject_id INTEGER NOT NULL,
		term VARCHAR(64) NOT NULL DEFAULT '',
		score DOUBLE PRECISION NOT NULL,
		created_by INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY,
		tenant_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		amount_cents BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		due_at TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the schema if missing. Idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}

	return nil
}
