package store

import (
	"context"
	"fmt"
)

// CreateAssignment records an active teaching assignment within the tenant.
func (s *Store) CreateAssignment(ctx context.Context, tenantID, teacherID, sectionID, subjectID int) error {
	_, err := s.exec(ctx,
		`INSERT INTO teaching_assignments (tenant_id, teacher_id, section_id, subject_id, active)
		 VALUES (?, ?, ?, ?, TRUE)`,
		tenantID, teacherID, sectionID, subjectID,
	)
	if err != nil {
		return fmt.Errorf("store: create assignment: %w", err)
	}

	return nil
}

// DeactivateAssignment marks an assignment inactive without deleting history.
func (s *Store) DeactivateAssignment(ctx context.Context, tenantID, teacherID, sectionID, subjectID int) error {
	_, err := s.exec(ctx,
		`UPDATE teaching_assignments SET active = FALSE
		 WHERE tenant_id = ? AND teacher_id = ? AND section_id = ? AND subject_id = ?`,
		tenantID, teacherID, sectionID, subjectID,
	)
	if err != nil {
		return fmt.Errorf("store: deactivate assignment: %w", err)
	}

	return nil
}

// CreateGuardianRelation links a guardian to a student within the tenant.
// The student must exist in the same tenant; a cross-tenant student id is
// reported as ErrNotFound.
func (s *Store) CreateGuardianRelation(ctx context.Context, tenantID, guardianID, studentID int) error {
	if _, err := s.GetStudent(ctx, tenantID, studentID); err != nil {
		return err
	}

	_, err := s.exec(ctx,
		`INSERT INTO guardian_relations (tenant_id, guardian_id, student_id)
		 VALUES (?, ?, ?)`,
		tenantID, guardianID, studentID,
	)
	if err != nil {
		return fmt.Errorf("store: create guardian relation: %w", err)
	}

	return nil
}
