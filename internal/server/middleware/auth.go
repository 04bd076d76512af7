package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/log"
	"github.com/campushq/campushub/internal/server/biz"
)

// WithJWTAuth verifies the bearer token, resolves the caller's identity and
// binds it to the request context. Requests past this middleware always carry
// exactly one identity.
func WithJWTAuth(auth *biz.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractTokenFromRequest(c.Request, &TokenConfig{
			Headers:       []string{"Authorization"},
			RequireBearer: true,
		})
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		ident, err := auth.AuthenticateJWTToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, biz.ErrInvalidJWT) {
				AbortWithError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			} else {
				AbortWithError(c, http.StatusInternalServerError, errors.New("Failed to validate token"))
			}

			return
		}

		ctx, err := authz.WithIdentity(c.Request.Context(), ident)
		if err != nil {
			// A second, different identity on one request is an attack or a
			// wiring bug; either way the request dies here.
			log.Error(c.Request.Context(), "identity conflict", log.Cause(err))
			AbortWithError(c, http.StatusInternalServerError, errors.New("Failed to bind identity"))

			return
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
