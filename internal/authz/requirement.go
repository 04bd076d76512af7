package authz

import (
	"fmt"
	"slices"
)

// Requirement is the static metadata attached to a request type: what the
// caller needs for the request to be authorized. An empty requirement is
// implicitly always authorized.
type Requirement struct {
	// Roles is an any-of set: holding one suffices.
	Roles []Role
	// Permissions is an all-of set: every one is required.
	Permissions []Permission
	// Policies is an ordered all-of list, evaluated in declared order with
	// short-circuit on first failure.
	Policies []PolicyName
}

// Empty reports whether the requirement demands nothing.
func (r Requirement) Empty() bool {
	return len(r.Roles) == 0 && len(r.Permissions) == 0 && len(r.Policies) == 0
}

// RequirementOption configures one requirement during registration.
type RequirementOption func(*Requirement)

// AnyRole requires at least one of the given roles.
func AnyRole(roles ...Role) RequirementOption {
	return func(r *Requirement) {
		r.Roles = append(r.Roles, roles...)
	}
}

// AllPermissions requires every one of the given permissions.
func AllPermissions(permissions ...Permission) RequirementOption {
	return func(r *Requirement) {
		r.Permissions = append(r.Permissions, permissions...)
	}
}

// Policies requires every named policy to pass, in the given order.
func Policies(names ...PolicyName) RequirementOption {
	return func(r *Requirement) {
		r.Policies = append(r.Policies, names...)
	}
}

// RegistryBuilder accumulates policies and per-request requirements, then
// validates the whole table at Build. Registration happens once at startup,
// outside the hot path.
type RegistryBuilder struct {
	policies     map[PolicyName]Policy
	requirements map[string]Requirement
	prototypes   map[string]Request
	errs         []error
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		policies:     make(map[PolicyName]Policy),
		requirements: make(map[string]Requirement),
		prototypes:   make(map[string]Request),
	}
}

// Policy registers a named policy routine.
func (b *RegistryBuilder) Policy(policy Policy) *RegistryBuilder {
	if _, ok := b.policies[policy.Name()]; ok {
		b.errs = append(b.errs, fmt.Errorf("authz: policy %q registered twice", policy.Name()))
		return b
	}

	b.policies[policy.Name()] = policy

	return b
}

// Request associates a requirement with the prototype's request type. The
// prototype's shape is checked against every required policy's capability at
// Build, so capability mismatches surface at startup instead of per request.
func (b *RegistryBuilder) Request(prototype Request, opts ...RequirementOption) *RegistryBuilder {
	name := prototype.RequestName()
	if _, ok := b.requirements[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("authz: request %q registered twice", name))
		return b
	}

	var requirement Requirement
	for _, opt := range opts {
		opt(&requirement)
	}

	b.requirements[name] = requirement
	b.prototypes[name] = prototype

	return b
}

// Build validates the accumulated table and returns an immutable Registry.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	for name, requirement := range b.requirements {
		for _, policyName := range requirement.Policies {
			policy, ok := b.policies[policyName]
			if !ok {
				return nil, fmt.Errorf("authz: request %q requires unregistered policy %q", name, policyName)
			}

			if !Implements(b.prototypes[name], policy.Capability()) {
				return nil, fmt.Errorf(
					"authz: request %q does not implement capability %q required by policy %q",
					name, policy.Capability(), policyName,
				)
			}
		}
	}

	return &Registry{
		policies:     b.policies,
		requirements: b.requirements,
	}, nil
}

// MustBuild is Build that panics on error, for startup wiring.
func (b *RegistryBuilder) MustBuild() *Registry {
	registry, err := b.Build()
	if err != nil {
		panic(err)
	}

	return registry
}

// Registry is the immutable requirement and policy table. Safe for
// unsynchronized concurrent reads; never mutated after Build.
type Registry struct {
	policies     map[PolicyName]Policy
	requirements map[string]Requirement
}

// RequirementFor returns the requirement registered for the request name.
func (r *Registry) RequirementFor(name string) (Requirement, bool) {
	requirement, ok := r.requirements[name]
	return requirement, ok
}

// PolicyFor returns the policy registered under the given name.
func (r *Registry) PolicyFor(name PolicyName) (Policy, bool) {
	policy, ok := r.policies[name]
	return policy, ok
}

// PolicyNames returns the registered policy names in stable order.
func (r *Registry) PolicyNames() []PolicyName {
	names := make([]PolicyName, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
