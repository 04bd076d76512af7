package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/objects"
	"github.com/campushq/campushub/internal/server/biz"
	"github.com/campushq/campushub/internal/server/middleware"
)

type AuthHandlersParams struct {
	fx.In

	AuthService *biz.AuthService
	UserService *biz.UserService
}

func NewAuthHandlers(params AuthHandlersParams) *AuthHandlers {
	return &AuthHandlers{
		AuthService: params.AuthService,
		UserService: params.UserService,
	}
}

type AuthHandlers struct {
	AuthService *biz.AuthService
	UserService *biz.UserService
}

type SignInRequest struct {
	SchoolID int    `json:"school_id" binding:"required"`
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required"`
}

type SignInResponse struct {
	User  *objects.UserInfo `json:"user"`
	Token string            `json:"token"`
}

// SignIn handles user authentication.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var (
		ctx = c.Request.Context()
		req SignInRequest
	)

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid request format"))
		return
	}

	user, err := h.AuthService.AuthenticateUser(ctx, req.SchoolID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, biz.ErrInvalidPassword) {
			JSONError(c, http.StatusUnauthorized, errors.New("Invalid email or password"))
			return
		}

		JSONError(c, http.StatusInternalServerError, errors.New("Internal server error"))

		return
	}

	token, err := h.AuthService.GenerateJWTToken(ctx, user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, errors.New("Internal server error"))
		return
	}

	response := SignInResponse{
		User:  h.UserService.UserInfo(ctx, user),
		Token: token,
	}

	c.JSON(http.StatusOK, response)
}

// SignOut revokes the presented token.
func (h *AuthHandlers) SignOut(c *gin.Context) {
	token, err := middleware.ExtractTokenFromRequest(c.Request, &middleware.TokenConfig{
		Headers:       []string{"Authorization"},
		RequireBearer: true,
	})
	if err != nil {
		JSONError(c, http.StatusUnauthorized, err)
		return
	}

	if err := h.AuthService.RevokeToken(c.Request.Context(), token); err != nil {
		if errors.Is(err, biz.ErrInvalidJWT) {
			JSONError(c, http.StatusUnauthorized, errors.New("Invalid token"))
			return
		}

		JSONError(c, http.StatusInternalServerError, errors.New("Internal server error"))

		return
	}

	c.Status(http.StatusNoContent)
}
