package biz

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/store"
)

// CreateGradeCommand records one score for a student in a (section, subject)
// pair. Authorization reads the section pair only; the student reference is
// checked against the tenant by the store.
type CreateGradeCommand struct {
	Student int
	Section int
	Subject int
	Term    string
	Score   float64
}

func (CreateGradeCommand) RequestName() string { return "grades.create" }

func (c CreateGradeCommand) SectionID() int { return c.Section }

func (c CreateGradeCommand) SubjectID() int { return c.Subject }

// ListGradesQuery reads the grade records of a (section, subject) pair.
type ListGradesQuery struct {
	Section int
	Subject int
}

func (ListGradesQuery) RequestName() string { return "grades.list" }

func (q ListGradesQuery) SectionID() int { return q.Section }

func (q ListGradesQuery) SubjectID() int { return q.Subject }

type GradeServiceParams struct {
	fx.In

	Store  *store.Store
	Engine *authz.Engine
}

func NewGradeService(params GradeServiceParams) *GradeService {
	return &GradeService{
		AbstractService: &AbstractService{store: params.Store},
		engine:          params.Engine,
	}
}

type GradeService struct {
	*AbstractService

	engine *authz.Engine
}

func (s *GradeService) CreateGrade(ctx context.Context, cmd CreateGradeCommand) (*store.Grade, error) {
	if err := s.engine.AuthorizeContext(ctx, cmd); err != nil {
		return nil, err
	}

	ident := authz.MustGetIdentity(ctx)

	// The student must be in the caller's tenant; a foreign student id reads
	// as missing.
	if _, err := s.store.GetStudent(ctx, ident.TenantID, cmd.Student); err != nil {
		return nil, err
	}

	grade, err := s.store.CreateGrade(ctx, ident.TenantID, &store.Grade{
		StudentID: cmd.Student,
		SectionID: cmd.Section,
		SubjectID: cmd.Subject,
		Term:      cmd.Term,
		Score:     cmd.Score,
		CreatedBy: ident.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}

	log.Debug(ctx, "grade created",
		log.Int("grade_id", grade.ID),
		log.Int("student_id", grade.StudentID),
		log.String("identity", ident.String()),
	)

	return grade, nil
}

func (s *GradeService) ListGrades(ctx context.Context, query ListGradesQuery) ([]*store.Grade, error) {
	if err := s.engine.AuthorizeContext(ctx, query); err != nil {
		return nil, err
	}

	ident := authz.MustGetIdentity(ctx)

	grades, err := s.store.ListGrades(ctx, ident.TenantID, query.Section, query.Subject)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}

	return grades, nil
}
