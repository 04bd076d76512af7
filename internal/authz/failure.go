package authz

import (
	"errors"
	"fmt"
)

// FailureKind classifies authorization failures.
type FailureKind int

const (
	// FailureUnknown is the zero value.
	FailureUnknown FailureKind = iota
	// FailureUnauthenticated means claims were missing or malformed.
	FailureUnauthenticated
	// FailureRoleDenied means none of the required roles is held.
	FailureRoleDenied
	// FailurePermissionDenied means at least one required permission is missing.
	FailurePermissionDenied
	// FailureNotAssigned means no active teaching assignment links the caller
	// to the requested section/subject pair.
	FailureNotAssigned
	// FailureNotSelf means the caller is not the targeted user.
	FailureNotSelf
	// FailureNotGuardian means no guardian relationship links the caller to
	// the targeted student.
	FailureNotGuardian
	// FailureNotFound is the tenant-boundary denial: the referenced entity does
	// not exist within the caller's tenant. Cross-tenant references surface as
	// this kind, indistinguishable from absence.
	FailureNotFound
	// FailurePolicyNotRegistered means a requirement names a policy the
	// registry does not know. A wiring defect, not an access decision.
	FailurePolicyNotRegistered
	// FailurePolicyMismatch means a request was tagged with a policy whose
	// capability its shape does not implement. A wiring defect.
	FailurePolicyMismatch
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnauthenticated:
		return "unauthenticated"
	case FailureRoleDenied:
		return "role_denied"
	case FailurePermissionDenied:
		return "permission_denied"
	case FailureNotAssigned:
		return "not_assigned"
	case FailureNotSelf:
		return "not_self"
	case FailureNotGuardian:
		return "not_guardian"
	case FailureNotFound:
		return "not_found"
	case FailurePolicyNotRegistered:
		return "policy_not_registered"
	case FailurePolicyMismatch:
		return "policy_mismatch"
	default:
		return "unknown"
	}
}

// ConfigDefect reports whether the kind signals a wiring bug rather than a
// user-level access decision. Config defects are logged at error severity and
// surfaced to callers as generic server errors.
func (k FailureKind) ConfigDefect() bool {
	return k == FailurePolicyNotRegistered || k == FailurePolicyMismatch
}

// Failure is the typed outcome of a denied authorization. The handler runs if
// and only if Authorize returns nil; any Failure short-circuits the request.
type Failure struct {
	Kind FailureKind
	// Request is the request name being authorized, empty for identity failures.
	Request string
	// Policy is set when the failure originated in a policy routine.
	Policy PolicyName
	// Missing names the unmet requirement, for logs only. Never surfaced to
	// callers verbatim: transport maps failures to uniform responses.
	Missing string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("authz: %s", f.Kind)
	if f.Request != "" {
		msg += fmt.Sprintf(" request=%s", f.Request)
	}

	if f.Policy != "" {
		msg += fmt.Sprintf(" policy=%s", f.Policy)
	}

	if f.Missing != "" {
		msg += fmt.Sprintf(" missing=%s", f.Missing)
	}

	return msg
}

// AsFailure unwraps err to a *Failure if one is in the chain.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}

	return nil, false
}

// Unauthenticated builds the failure returned when claims are missing or
// malformed.
func Unauthenticated(missing string) *Failure {
	return &Failure{Kind: FailureUnauthenticated, Missing: missing}
}

func roleDenied(request string, required []Role) *Failure {
	return &Failure{
		Kind:    FailureRoleDenied,
		Request: request,
		Missing: fmt.Sprintf("any of roles %v", required),
	}
}

func permissionDenied(request string, missing []Permission) *Failure {
	return &Failure{
		Kind:    FailurePermissionDenied,
		Request: request,
		Missing: fmt.Sprintf("permissions %v", missing),
	}
}

func notAssigned(request string, policy PolicyName, sectionID, subjectID int) *Failure {
	return &Failure{
		Kind:    FailureNotAssigned,
		Request: request,
		Policy:  policy,
		Missing: fmt.Sprintf("assignment for section=%d subject=%d", sectionID, subjectID),
	}
}

func notSelf(request string, policy PolicyName) *Failure {
	return &Failure{Kind: FailureNotSelf, Request: request, Policy: policy}
}

func notGuardian(request string, policy PolicyName, studentID int) *Failure {
	return &Failure{
		Kind:    FailureNotGuardian,
		Request: request,
		Policy:  policy,
		Missing: fmt.Sprintf("guardian relation for student=%d", studentID),
	}
}

func notRelated(request string, policy PolicyName, studentID int) *Failure {
	return &Failure{
		Kind:    FailureNotGuardian,
		Request: request,
		Policy:  policy,
		Missing: fmt.Sprintf("guardian relation or account link for student=%d", studentID),
	}
}

func policyNotRegistered(request string, policy PolicyName) *Failure {
	return &Failure{Kind: FailurePolicyNotRegistered, Request: request, Policy: policy}
}

func policyMismatch(request string, policy PolicyName, capability Capability) *Failure {
	return &Failure{
		Kind:    FailurePolicyMismatch,
		Request: request,
		Policy:  policy,
		Missing: fmt.Sprintf("capability %q", capability),
	}
}
