package store

import (
	"context"
	"fmt"
	"time"
)

// CreateGrade inserts a grade record for the tenant and returns it with the
// assigned id.
func (s *Store) CreateGrade(ctx context.Context, tenantID int, grade *Grade) (*Grade, error) {
	created := *grade
	created.TenantID = tenantID

	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	args := []any{
		tenantID, created.StudentID, created.SectionID, created.SubjectID,
		created.Term, created.Score, created.CreatedBy, created.CreatedAt,
	}

	// The pgx driver does not implement LastInsertId; postgres hands the id
	// back through RETURNING instead.
	if s.dialect == DialectPostgres {
		err := s.queryRow(ctx,
			`INSERT INTO grades (tenant_id, student_id, section_id, subject_id, term, score, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			args...,
		).Scan(&created.ID)
		if err != nil {
			return nil, fmt.Errorf("store: create grade: %w", err)
		}

		return &created, nil
	}

	result, err := s.exec(ctx,
		`INSERT INTO grades (tenant_id, student_id, section_id, subject_id, term, score, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("store: create grade: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: create grade id: %w", err)
	}

	created.ID = int(id)

	return &created, nil
}

// ListGrades returns the tenant's grade records for a (section, subject) pair.
func (s *Store) ListGrades(ctx context.Context, tenantID, sectionID, subjectID int) ([]*Grade, error) {
	rows, err := s.query(ctx,
		`SELECT id, tenant_id, student_id, section_id, subject_id, term, score, created_by, created_at
		 FROM grades WHERE tenant_id = ? AND section_id = ? AND subject_id = ?
		 ORDER BY id`,
		tenantID, sectionID, subjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list grades: %w", err)
	}
	defer rows.Close()

	var grades []*Grade

	for rows.Next() {
		var grade Grade

		err := rows.Scan(
			&grade.ID, &grade.TenantID, &grade.StudentID, &grade.SectionID,
			&grade.SubjectID, &grade.Term, &grade.Score, &grade.CreatedBy, &grade.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("store: scan grade: %w", err)
		}

		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}

	return grades, nil
}
