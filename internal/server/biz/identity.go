package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/store"
)

const (
	grantCacheTTL     = 5 * time.Minute
	grantCacheCleanup = 10 * time.Minute
)

type IdentityServiceParams struct {
	fx.In

	Store *store.Store
}

func NewIdentityService(params IdentityServiceParams) *IdentityService {
	return &IdentityService{
		AbstractService: &AbstractService{store: params.Store},
		grants:          cache.New(grantCacheTTL, grantCacheCleanup),
	}
}

// IdentityService resolves a user's roles and permissions within a tenant.
// Grants change rarely and are read on every token issue, so they are cached
// with a short TTL; revocation takes effect within grantCacheTTL at worst.
type IdentityService struct {
	*AbstractService

	grants *cache.Cache
}

type grantSet struct {
	Roles       []authz.Role
	Permissions []authz.Permission
}

// RolesAndPermissions returns the user's role set and effective permissions:
// the role defaults from the permission catalog plus any per-user grants.
func (s *IdentityService) RolesAndPermissions(ctx context.Context, tenantID, userID int) ([]authz.Role, []authz.Permission, error) {
	key := grantKey(tenantID, userID)
	if cached, ok := s.grants.Get(key); ok {
		set := cached.(grantSet)
		return set.Roles, set.Permissions, nil
	}

	roleTags, err := s.store.UserRoles(ctx, tenantID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve roles: %w", err)
	}

	roles := lo.FilterMap(roleTags, func(tag string, _ int) (authz.Role, bool) {
		return authz.Role(tag), authz.IsValidRole(tag)
	})

	permissions := authz.DefaultPermissions(roles...)

	grantTags, err := s.store.UserPermissions(ctx, tenantID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve permissions: %w", err)
	}

	for _, tag := range grantTags {
		if authz.IsValidPermission(tag) {
			permissions = append(permissions, authz.Permission(tag))
		}
	}

	permissions = lo.Uniq(permissions)

	s.grants.Set(key, grantSet{Roles: roles, Permissions: permissions}, cache.DefaultExpiration)

	return roles, permissions, nil
}

// Invalidate drops the cached grants for one user, forcing a re-read on the
// next resolution.
func (s *IdentityService) Invalidate(tenantID, userID int) {
	s.grants.Delete(grantKey(tenantID, userID))
}

// PurgeExpired evicts expired grant entries and reports how many remain.
func (s *IdentityService) PurgeExpired() int {
	s.grants.DeleteExpired()
	return s.grants.ItemCount()
}

func grantKey(tenantID, userID int) string {
	return fmt.Sprintf("%d:%d", tenantID, userID)
}
