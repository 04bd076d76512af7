package authz

import (
	"context"
	"fmt"
)

// AssignmentLookup is the narrow read contract the assignment policy depends
// on. Implementations scope the lookup to the given tenant; a cross-tenant
// reference behaves exactly like a missing assignment.
type AssignmentLookup interface {
	ExistsAssignment(ctx context.Context, tenantID, teacherID, sectionID, subjectID int) (bool, error)
}

// GuardianLookup is the narrow read contract the guardian policy depends on.
type GuardianLookup interface {
	ExistsGuardianRelation(ctx context.Context, tenantID, guardianID, studentID int) (bool, error)
}

// StudentLinkLookup resolves the user account linked to a student record.
// Students without a login, and students outside the tenant, report no link.
type StudentLinkLookup interface {
	StudentUserID(ctx context.Context, tenantID, studentID int) (int, bool, error)
}

// Built-in policy names.
const (
	// PolicyTeacherOfClassOrAdmin passes when the caller holds an active
	// teaching assignment for the request's (section, subject) pair.
	PolicyTeacherOfClassOrAdmin PolicyName = "TeacherOfClassOrAdmin"
	// PolicySelfOrAdmin passes when the caller is the targeted user.
	PolicySelfOrAdmin PolicyName = "SelfOrAdmin"
	// PolicyGuardianOfStudent passes when a guardian relationship links the
	// caller to the targeted student.
	PolicyGuardianOfStudent PolicyName = "GuardianOfStudent"
	// PolicyGuardianOrSelfOfStudent passes when a guardian relationship links
	// the caller to the targeted student, or the student record is linked to
	// the caller's own account.
	PolicyGuardianOrSelfOfStudent PolicyName = "GuardianOrSelfOfStudent"
)

// NewTeacherAssignmentPolicy builds the assignment policy over the given
// lookup contract.
func NewTeacherAssignmentPolicy(assignments AssignmentLookup) Policy {
	return &teacherAssignmentPolicy{assignments: assignments}
}

type teacherAssignmentPolicy struct {
	assignments AssignmentLookup
}

func (p *teacherAssignmentPolicy) Name() PolicyName {
	return PolicyTeacherOfClassOrAdmin
}

func (p *teacherAssignmentPolicy) Capability() Capability {
	return CapabilitySection
}

func (p *teacherAssignmentPolicy) Evaluate(ctx context.Context, ident *Identity, req Request) error {
	scoped, ok := req.(SectionScoped)
	if !ok {
		return policyMismatch(req.RequestName(), p.Name(), p.Capability())
	}

	assigned, err := p.assignments.ExistsAssignment(ctx, ident.TenantID, ident.UserID, scoped.SectionID(), scoped.SubjectID())
	if err != nil {
		return fmt.Errorf("authz: assignment lookup: %w", err)
	}

	if !assigned {
		return notAssigned(req.RequestName(), p.Name(), scoped.SectionID(), scoped.SubjectID())
	}

	return nil
}

// NewSelfPolicy builds the ownership policy. Administrative callers never
// reach it; the pipeline bypasses policies for them uniformly.
func NewSelfPolicy() Policy {
	return &selfPolicy{}
}

type selfPolicy struct{}

func (p *selfPolicy) Name() PolicyName {
	return PolicySelfOrAdmin
}

func (p *selfPolicy) Capability() Capability {
	return CapabilitySelf
}

func (p *selfPolicy) Evaluate(ctx context.Context, ident *Identity, req Request) error {
	scoped, ok := req.(SelfScoped)
	if !ok {
		return policyMismatch(req.RequestName(), p.Name(), p.Capability())
	}

	if ident.UserID != scoped.TargetUserID() {
		return notSelf(req.RequestName(), p.Name())
	}

	return nil
}

// NewGuardianPolicy builds the guardian-of-student policy over the given
// lookup contract.
func NewGuardianPolicy(guardians GuardianLookup) Policy {
	return &guardianPolicy{guardians: guardians}
}

type guardianPolicy struct {
	guardians GuardianLookup
}

func (p *guardianPolicy) Name() PolicyName {
	return PolicyGuardianOfStudent
}

func (p *guardianPolicy) Capability() Capability {
	return CapabilityStudent
}

func (p *guardianPolicy) Evaluate(ctx context.Context, ident *Identity, req Request) error {
	scoped, ok := req.(StudentScoped)
	if !ok {
		return policyMismatch(req.RequestName(), p.Name(), p.Capability())
	}

	related, err := p.guardians.ExistsGuardianRelation(ctx, ident.TenantID, ident.UserID, scoped.StudentID())
	if err != nil {
		return fmt.Errorf("authz: guardian lookup: %w", err)
	}

	if !related {
		return notGuardian(req.RequestName(), p.Name(), scoped.StudentID())
	}

	return nil
}

// NewStudentAccessPolicy builds the guardian-or-self policy over the given
// lookup contracts.
func NewStudentAccessPolicy(guardians GuardianLookup, students StudentLinkLookup) Policy {
	return &studentAccessPolicy{guardians: guardians, students: students}
}

type studentAccessPolicy struct {
	guardians GuardianLookup
	students  StudentLinkLookup
}

func (p *studentAccessPolicy) Name() PolicyName {
	return PolicyGuardianOrSelfOfStudent
}

func (p *studentAccessPolicy) Capability() Capability {
	return CapabilityStudent
}

func (p *studentAccessPolicy) Evaluate(ctx context.Context, ident *Identity, req Request) error {
	scoped, ok := req.(StudentScoped)
	if !ok {
		return policyMismatch(req.RequestName(), p.Name(), p.Capability())
	}

	related, err := p.guardians.ExistsGuardianRelation(ctx, ident.TenantID, ident.UserID, scoped.StudentID())
	if err != nil {
		return fmt.Errorf("authz: guardian lookup: %w", err)
	}

	if related {
		return nil
	}

	linkedUserID, linked, err := p.students.StudentUserID(ctx, ident.TenantID, scoped.StudentID())
	if err != nil {
		return fmt.Errorf("authz: student link lookup: %w", err)
	}

	if linked && linkedUserID == ident.UserID {
		return nil
	}

	return notRelated(req.RequestName(), p.Name(), scoped.StudentID())
}
