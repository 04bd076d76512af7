package authz

import "context"

// PolicyName identifies a policy in the registry.
type PolicyName string

// Policy is a named predicate evaluated beyond role/permission checks. A
// routine may perform tenant-scoped lookups; it must derive the tenant id
// from the identity, never accept one from the caller.
type Policy interface {
	Name() PolicyName
	// Capability declares the request shape this policy reads. The registry
	// verifies at build time that every request tagged with this policy
	// implements it.
	Capability() Capability
	// Evaluate returns nil to authorize, a *Failure to deny, or any other
	// error for lookup faults. Evaluation must honor ctx cancellation.
	Evaluate(ctx context.Context, ident *Identity, req Request) error
}
