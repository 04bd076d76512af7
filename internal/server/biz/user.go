package biz

import (
	"context"

	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/objects"
	"github.com/campushq/campushub/internal/store"
)

// GetUserQuery reads one user profile.
type GetUserQuery struct {
	User int
}

func (GetUserQuery) RequestName() string { return "users.get" }

func (q GetUserQuery) TargetUserID() int { return q.User }

type UserServiceParams struct {
	fx.In

	Store           *store.Store
	Engine          *authz.Engine
	IdentityService *IdentityService
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		AbstractService: &AbstractService{store: params.Store},
		engine:          params.Engine,
		identity:        params.IdentityService,
	}
}

type UserService struct {
	*AbstractService

	engine   *authz.Engine
	identity *IdentityService
}

func (s *UserService) GetUser(ctx context.Context, query GetUserQuery) (*store.User, error) {
	if err := s.engine.AuthorizeContext(ctx, query); err != nil {
		return nil, err
	}

	ident := authz.MustGetIdentity(ctx)

	return s.store.GetUserByID(ctx, ident.TenantID, query.User)
}

// UserInfo shapes a user row into the transport payload. The password hash
// never leaves the service layer.
func (s *UserService) UserInfo(ctx context.Context, user *store.User) *objects.UserInfo {
	roles, _, err := s.identity.RolesAndPermissions(ctx, user.TenantID, user.ID)
	if err != nil {
		roles = nil
	}

	tags := make([]string, 0, len(roles))
	for _, role := range roles {
		tags = append(tags, string(role))
	}

	return &objects.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Roles:       tags,
	}
}
