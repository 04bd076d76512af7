package store

import "context"

// ExistsAssignment reports whether an active teaching assignment links the
// teacher to the (section, subject) pair within the tenant.
func (s *Store) ExistsAssignment(ctx context.Context, tenantID, teacherID, sectionID, subjectID int) (bool, error) {
	return s.exists(ctx,
		`SELECT 1 FROM teaching_assignments
		 WHERE tenant_id = ? AND teacher_id = ? AND section_id = ? AND subject_id = ? AND active`,
		tenantID, teacherID, sectionID, subjectID,
	)
}

// ExistsGuardianRelation reports whether a guardian relationship links the
// guardian to the student within the tenant.
func (s *Store) ExistsGuardianRelation(ctx context.Context, tenantID, guardianID, studentID int) (bool, error) {
	return s.exists(ctx,
		`SELECT 1 FROM guardian_relations
		 WHERE tenant_id = ? AND guardian_id = ? AND student_id = ?`,
		tenantID, guardianID, studentID,
	)
}
