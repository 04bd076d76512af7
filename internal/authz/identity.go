package authz

import (
	"context"
	"fmt"
	"slices"
)

// Claims are the verified token claims this package shapes into an Identity.
// Cryptographic verification is the token issuer's responsibility; by the time
// a Claims value reaches ResolveIdentity the signature has been checked.
type Claims struct {
	Subject     int      `json:"sub"`
	TenantID    int      `json:"tenant_id"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"perms,omitempty"`
}

// Identity is the resolved, per-request representation of the authenticated
// caller. Immutable for the lifetime of one request; constructed once from
// verified claims and never mutated afterward.
type Identity struct {
	UserID   int
	TenantID int

	roles       map[Role]struct{}
	permissions map[Permission]struct{}
}

// NewIdentity constructs an Identity from already-validated parts.
func NewIdentity(userID, tenantID int, roles []Role, permissions []Permission) *Identity {
	ident := &Identity{
		UserID:      userID,
		TenantID:    tenantID,
		roles:       make(map[Role]struct{}, len(roles)),
		permissions: make(map[Permission]struct{}, len(permissions)),
	}

	for _, role := range roles {
		ident.roles[role] = struct{}{}
	}

	for _, permission := range permissions {
		ident.permissions[permission] = struct{}{}
	}

	return ident
}

// ResolveIdentity shapes verified claims into an Identity. It fails with an
// Unauthenticated failure when the subject or tenant claim is missing.
func ResolveIdentity(claims Claims) (*Identity, error) {
	if claims.Subject <= 0 {
		return nil, Unauthenticated("missing subject claim")
	}

	if claims.TenantID <= 0 {
		return nil, Unauthenticated("missing tenant claim")
	}

	roles := make([]Role, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		roles = append(roles, Role(role))
	}

	permissions := make([]Permission, 0, len(claims.Permissions))
	for _, permission := range claims.Permissions {
		permissions = append(permissions, Permission(permission))
	}

	return NewIdentity(claims.Subject, claims.TenantID, roles, permissions), nil
}

// HasRole checks if the identity holds the given role.
func (id *Identity) HasRole(role Role) bool {
	_, ok := id.roles[role]
	return ok
}

// HasAnyRole checks if the identity holds at least one of the given roles.
func (id *Identity) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if id.HasRole(role) {
			return true
		}
	}

	return false
}

// IsAdmin checks if the identity holds the administrative role.
func (id *Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}

// HasPermission checks if the identity holds the given permission.
func (id *Identity) HasPermission(permission Permission) bool {
	_, ok := id.permissions[permission]
	return ok
}

// MissingPermissions returns the subset of required the identity does not hold.
func (id *Identity) MissingPermissions(required []Permission) []Permission {
	var missing []Permission

	for _, permission := range required {
		if !id.HasPermission(permission) {
			missing = append(missing, permission)
		}
	}

	return missing
}

// Roles returns the identity's role set in stable order.
func (id *Identity) Roles() []Role {
	roles := make([]Role, 0, len(id.roles))
	for role := range id.roles {
		roles = append(roles, role)
	}

	slices.Sort(roles)

	return roles
}

// Permissions returns the identity's permission set in stable order.
func (id *Identity) Permissions() []Permission {
	permissions := make([]Permission, 0, len(id.permissions))
	for permission := range id.permissions {
		permissions = append(permissions, permission)
	}

	slices.Sort(permissions)

	return permissions
}

// String returns a string representation of the identity (for audit logs).
func (id *Identity) String() string {
	return fmt.Sprintf("user:%d@tenant:%d", id.UserID, id.TenantID)
}

// identityKey is an unexported key type to prevent external forgery.
type identityKey struct{}

// WithIdentity sets the Identity, returns an error if a different one already
// exists. Ensures each context can only carry one identity, preventing
// identity mixing across middleware layers.
func WithIdentity(ctx context.Context, ident *Identity) (context.Context, error) {
	if existing, ok := GetIdentity(ctx); ok {
		if existing.UserID != ident.UserID || existing.TenantID != ident.TenantID {
			return ctx, fmt.Errorf("authz: identity conflict: existing=%s, new=%s", existing.String(), ident.String())
		}

		return ctx, nil // Same identity, idempotent
	}

	return context.WithValue(ctx, identityKey{}, ident), nil
}

// GetIdentity reads the Identity from the context.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*Identity)
	return ident, ok
}

// MustGetIdentity reads the Identity, panics if not present (used in chains
// where authentication is already confirmed).
func MustGetIdentity(ctx context.Context) *Identity {
	ident, ok := GetIdentity(ctx)
	if !ok {
		panic("authz: no identity in context")
	}

	return ident
}
