package biz

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/store"
)

// AssignTeacherCommand activates a teaching assignment for a (section,
// subject) pair.
type AssignTeacherCommand struct {
	Teacher int
	Section int
	Subject int
}

func (AssignTeacherCommand) RequestName() string { return "enrollments.assign" }

// UnassignTeacherCommand deactivates a teaching assignment, keeping history.
type UnassignTeacherCommand struct {
	Teacher int
	Section int
	Subject int
}

func (UnassignTeacherCommand) RequestName() string { return "enrollments.unassign" }

// LinkGuardianCommand links a guardian user to a student.
type LinkGuardianCommand struct {
	Guardian int
	Student  int
}

func (LinkGuardianCommand) RequestName() string { return "enrollments.link_guardian" }

type EnrollmentServiceParams struct {
	fx.In

	Store           *store.Store
	Engine          *authz.Engine
	IdentityService *IdentityService
}

func NewEnrollmentService(params EnrollmentServiceParams) *EnrollmentService {
	return &EnrollmentService{
		AbstractService: &AbstractService{store: params.Store},
		engine:          params.Engine,
		identity:        params.IdentityService,
	}
}

// EnrollmentService manages the relations the policies later read: teaching
// assignments and guardian links.
type EnrollmentService struct {
	*AbstractService

	engine   *authz.Engine
	identity *IdentityService
}

func (s *EnrollmentService) AssignTeacher(ctx context.Context, cmd AssignTeacherCommand) error {
	if err := s.engine.AuthorizeContext(ctx, cmd); err != nil {
		return err
	}

	ident := authz.MustGetIdentity(ctx)

	// The teacher must be a user of this tenant.
	if _, err := s.store.GetUserByID(ctx, ident.TenantID, cmd.Teacher); err != nil {
		return err
	}

	if err := s.store.CreateAssignment(ctx, ident.TenantID, cmd.Teacher, cmd.Section, cmd.Subject); err != nil {
		return fmt.Errorf("assign teacher: %w", err)
	}

	log.Info(ctx, "teaching assignment created",
		log.Int("teacher_id", cmd.Teacher),
		log.Int("section_id", cmd.Section),
		log.Int("subject_id", cmd.Subject),
	)

	return nil
}

func (s *EnrollmentService) UnassignTeacher(ctx context.Context, cmd UnassignTeacherCommand) error {
	if err := s.engine.AuthorizeContext(ctx, cmd); err != nil {
		return err
	}

	ident := authz.MustGetIdentity(ctx)

	if err := s.store.DeactivateAssignment(ctx, ident.TenantID, cmd.Teacher, cmd.Section, cmd.Subject); err != nil {
		return fmt.Errorf("unassign teacher: %w", err)
	}

	return nil
}

func (s *EnrollmentService) LinkGuardian(ctx context.Context, cmd LinkGuardianCommand) error {
	if err := s.engine.AuthorizeContext(ctx, cmd); err != nil {
		return err
	}

	ident := authz.MustGetIdentity(ctx)

	if _, err := s.store.GetUserByID(ctx, ident.TenantID, cmd.Guardian); err != nil {
		return err
	}

	if err := s.store.CreateGuardianRelation(ctx, ident.TenantID, cmd.Guardian, cmd.Student); err != nil {
		return err
	}

	// The guardian may already hold cached grants without the new relation's
	// defaults.
	s.identity.Invalidate(ident.TenantID, cmd.Guardian)

	log.Info(ctx, "guardian linked",
		log.Int("guardian_id", cmd.Guardian),
		log.Int("student_id", cmd.Student),
	)

	return nil
}
