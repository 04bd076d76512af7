package authz

// Request is an authorizable command or query. The name identifies the
// request type in the requirement registry; it is static per type, never
// derived from request data.
type Request interface {
	RequestName() string
}

// Capability identifies the request shape a policy routine reads. Each
// capability corresponds to one marker interface below; the registry checks
// the mapping from policy to capability at build time.
type Capability string

const (
	// CapabilityNone marks policies that read no request fields.
	CapabilityNone Capability = ""
	// CapabilitySection marks requests exposing a (section, subject) pair.
	CapabilitySection Capability = "section"
	// CapabilityStudent marks requests exposing a target student id.
	CapabilityStudent Capability = "student"
	// CapabilitySelf marks requests exposing a target user id.
	CapabilitySelf Capability = "self"
)

// SectionScoped is implemented by requests that target a section/subject
// pair, such as grade commands.
type SectionScoped interface {
	SectionID() int
	SubjectID() int
}

// StudentScoped is implemented by requests that target a specific student.
type StudentScoped interface {
	StudentID() int
}

// SelfScoped is implemented by requests that target a specific user account,
// enabling self-access checks.
type SelfScoped interface {
	TargetUserID() int
}

// Implements reports whether the request's shape satisfies the capability.
func Implements(req Request, capability Capability) bool {
	switch capability {
	case CapabilityNone:
		return true
	case CapabilitySection:
		_, ok := req.(SectionScoped)
		return ok
	case CapabilityStudent:
		_, ok := req.(StudentScoped)
		return ok
	case CapabilitySelf:
		_, ok := req.(SelfScoped)
		return ok
	default:
		return false
	}
}
