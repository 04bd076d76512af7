package authz

import (
	"context"

	"github.com/samber/lo"

	"github.com/campushq/campushub/internal/log"
)

// Engine is the authorization pipeline stage, invoked for every authorizable
// request. It holds no state across invocations; the registry it reads is
// immutable after startup, so concurrent authorizations need no locking.
type Engine struct {
	registry *Registry
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Authorize evaluates roles, then permissions, then policies for req, in
// strict order, short-circuiting on the first failure. It returns nil when
// the request is authorized; the handler must run only in that case.
func (e *Engine) Authorize(ctx context.Context, ident *Identity, req Request) error {
	if ident == nil {
		return Unauthenticated("no identity")
	}

	requirement, ok := e.registry.RequirementFor(req.RequestName())
	if !ok || requirement.Empty() {
		// Unregistered or empty requirements are implicitly authorized; the
		// request still passed through the pipeline for uniformity.
		return nil
	}

	if len(requirement.Roles) > 0 && !ident.HasAnyRole(requirement.Roles...) {
		failure := roleDenied(req.RequestName(), requirement.Roles)
		e.logDecision(ctx, ident, req, failure)

		return failure
	}

	if missing := ident.MissingPermissions(requirement.Permissions); len(missing) > 0 {
		failure := permissionDenied(req.RequestName(), missing)
		e.logDecision(ctx, ident, req, failure)

		return failure
	}

	if err := e.evaluatePolicies(ctx, ident, req, requirement.Policies); err != nil {
		return err
	}

	log.Debug(ctx, "authz: authorized",
		log.String("identity", ident.String()),
		log.String("request", req.RequestName()),
	)

	return nil
}

// AuthorizeContext authorizes req using the identity carried by ctx.
func (e *Engine) AuthorizeContext(ctx context.Context, req Request) error {
	ident, ok := GetIdentity(ctx)
	if !ok {
		return Unauthenticated("no identity in context")
	}

	return e.Authorize(ctx, ident, req)
}

func (e *Engine) evaluatePolicies(ctx context.Context, ident *Identity, req Request, names []PolicyName) error {
	if len(names) == 0 {
		return nil
	}

	// The registry lookup happens for every name regardless of who is asking:
	// an unregistered policy is a wiring defect, not an access decision, and
	// must surface the same way for an admin as for anyone else.
	policies := make([]Policy, 0, len(names))

	for _, name := range names {
		policy, ok := e.registry.PolicyFor(name)
		if !ok {
			failure := policyNotRegistered(req.RequestName(), name)
			e.logDecision(ctx, ident, req, failure)

			return failure
		}

		policies = append(policies, policy)
	}

	// Universal administrative override: every policy routine short-circuits
	// to success without evaluating its specific logic.
	if ident.IsAdmin() {
		log.Debug(ctx, "authz: admin policy bypass",
			log.String("identity", ident.String()),
			log.String("request", req.RequestName()),
		)

		return nil
	}

	for _, policy := range policies {
		// Policies may suspend on tenant-scoped lookups; bail out before
		// starting one if the request was cancelled.
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := policy.Evaluate(ctx, ident, req); err != nil {
			if failure, ok := AsFailure(err); ok {
				e.logDecision(ctx, ident, req, failure)
			}

			return err
		}
	}

	return nil
}

func (e *Engine) logDecision(ctx context.Context, ident *Identity, req Request, failure *Failure) {
	fields := []log.Field{
		log.String("identity", ident.String()),
		log.String("request", req.RequestName()),
		log.String("kind", failure.Kind.String()),
		log.String("policy", string(failure.Policy)),
		log.String("missing", failure.Missing),
	}

	// Wiring defects are operator problems, not access decisions; they must
	// stand out in the logs even though callers see a generic server error.
	logFn := lo.Ternary(failure.Kind.ConfigDefect(), log.Error, log.Warn)
	logFn(ctx, "authz: denied", fields...)
}
