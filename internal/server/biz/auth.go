package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/store"
)

type AuthConfig struct {
	// SecretKey signs JWT tokens. Generated at startup when empty, which
	// invalidates outstanding tokens on restart.
	SecretKey string `conf:"secret_key" yaml:"secret_key" json:"-"`

	TokenTTL time.Duration `conf:"token_ttl" yaml:"token_ttl" json:"token_ttl"`
}

type AuthServiceParams struct {
	fx.In

	Config          AuthConfig
	Store           *store.Store
	IdentityService *IdentityService
}

func NewAuthService(params AuthServiceParams) (*AuthService, error) {
	secretKey := params.Config.SecretKey
	if secretKey == "" {
		generated, err := GenerateSecretKey()
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}

		secretKey = generated

		log.Warn(context.Background(), "auth.secret_key not configured, tokens will not survive restarts")
	}

	tokenTTL := params.Config.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}

	return &AuthService{
		AbstractService: &AbstractService{store: params.Store},
		IdentityService: params.IdentityService,
		secretKey:       []byte(secretKey),
		tokenTTL:        tokenTTL,
		revoked:         cache.New(tokenTTL, 2*tokenTTL),
	}, nil
}

type AuthService struct {
	*AbstractService

	IdentityService *IdentityService

	secretKey []byte
	tokenTTL  time.Duration

	// revoked maps jti to the token's expiry; entries fall out of the cache
	// once the token would have expired anyway.
	revoked *cache.Cache
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hex.EncodeToString(hashedPassword), nil
}

// VerifyPassword verifies a password against a hash.
func VerifyPassword(hashedPassword, password string) error {
	decodedHashedPassword, err := hex.DecodeString(hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to decode hashed password: %w", err)
	}

	return bcrypt.CompareHashAndPassword(decodedHashedPassword, []byte(password))
}

// GenerateSecretKey generates a random secret key for JWT.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32) // 256 bits

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

// AuthenticateUser authenticates a user within a tenant by email and password.
func (s *AuthService) AuthenticateUser(ctx context.Context, tenantID int, email, password string) (*store.User, error) {
	user, err := s.store.GetUserByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", ErrInvalidPassword)
		}

		log.Error(ctx, "failed to get user", log.Cause(err))

		return nil, ErrInternal
	}

	if user.Status != store.UserStatusActivated {
		return nil, fmt.Errorf("user not activated: %w", ErrInvalidPassword)
	}

	err = VerifyPassword(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrInvalidPassword)
	}

	log.Debug(ctx, "user authenticated", log.Int("user_id", user.ID), log.Int("tenant_id", user.TenantID))

	return user, nil
}

// GenerateJWTToken issues a signed token carrying the user's tenant, roles and
// effective permissions.
func (s *AuthService) GenerateJWTToken(ctx context.Context, user *store.User) (string, error) {
	roles, permissions, err := s.IdentityService.RolesAndPermissions(ctx, user.TenantID, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve grants: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       user.ID,
		"tenant_id": user.TenantID,
		"roles":     lo.Map(roles, func(role authz.Role, _ int) string { return string(role) }),
		"perms":     lo.Map(permissions, func(permission authz.Permission, _ int) string { return string(permission) }),
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// AuthenticateJWTToken validates a token and resolves the caller's identity.
func (s *AuthService) AuthenticateJWTToken(ctx context.Context, tokenString string) (*authz.Identity, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	if jti, ok := claims["jti"].(string); ok {
		if _, found := s.revoked.Get(jti); found {
			return nil, fmt.Errorf("%w: token revoked", ErrInvalidJWT)
		}
	}

	ident, err := authz.ResolveIdentity(tokenClaims(claims))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJWT, err)
	}

	user, err := s.store.GetUserByID(ctx, ident.TenantID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrInvalidJWT, err)
	}

	if user.Status != store.UserStatusActivated {
		return nil, fmt.Errorf("%w: user not activated", ErrInvalidJWT)
	}

	return ident, nil
}

// RevokeToken invalidates a token before its natural expiry. Used by sign-out.
func (s *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return fmt.Errorf("%w: missing jti claim", ErrInvalidJWT)
	}

	ttl := s.tokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}

	s.revoked.Set(jti, struct{}{}, ttl)

	log.Debug(ctx, "token revoked", log.String("jti", jti))

	return nil
}

// PurgeRevocations evicts expired revocation entries and reports how many remain.
func (s *AuthService) PurgeRevocations() int {
	s.revoked.DeleteExpired()
	return s.revoked.ItemCount()
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidJWT, token.Header["alg"])
		}

		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse jwt token: %w", ErrInvalidJWT, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrInvalidJWT)
	}

	return claims, nil
}

// tokenClaims shapes decoded JWT claims into verified authz claims.
func tokenClaims(claims jwt.MapClaims) authz.Claims {
	out := authz.Claims{}

	if sub, ok := claims["sub"].(float64); ok {
		out.Subject = int(sub)
	}

	if tenant, ok := claims["tenant_id"].(float64); ok {
		out.TenantID = int(tenant)
	}

	out.Roles = stringSlice(claims["roles"])
	out.Permissions = stringSlice(claims["perms"])

	return out
}

func stringSlice(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
