// Package authz implements the request authorization engine: a per-request
// identity context resolved from verified claims, a static registry of
// requirement descriptors and named policies, and a pipeline that evaluates
// roles, permissions and policies in order with short-circuit semantics.
//
// Core concepts:
//
//   - Identity: a single authorization identity per request, shaped from
//     verified claims. Set via WithIdentity (set-once) and read via
//     GetIdentity / MustGetIdentity.
//
//   - Requirement: static metadata declaring what a request type needs to be
//     authorized (any-of roles, all-of permissions, ordered all-of policies).
//     Registered once at startup through RegistryBuilder.
//
//   - Policy: a named predicate evaluated beyond role/permission checks. A
//     policy reads request fields only through the capability interface it
//     declares, and reaches tenant data only through narrow lookup contracts
//     keyed by the identity's tenant id.
//
// Usage rules:
//
//  1. Registries are immutable after Build; build them once at startup.
//  2. Identities are immutable after resolution; never cache across requests.
//  3. Policies derive the tenant id from the identity, never from the request.
//  4. Administrative identities bypass every policy routine uniformly.
package authz
