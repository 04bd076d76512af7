package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/server/biz"
)

type UserHandlersParams struct {
	fx.In

	UserService *biz.UserService
}

func NewUserHandlers(params UserHandlersParams) *UserHandlers {
	return &UserHandlers{
		UserService: params.UserService,
	}
}

type UserHandlers struct {
	UserService *biz.UserService
}

// Get returns one user profile.
func (h *UserHandlers) Get(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("Invalid user id"))
		return
	}

	user, err := h.UserService.GetUser(c.Request.Context(), biz.GetUserQuery{User: userID})
	if err != nil {
		Denied(c, err)
		return
	}

	c.JSON(http.StatusOK, h.UserService.UserInfo(c.Request.Context(), user))
}
