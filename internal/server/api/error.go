package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campushub/internal/authz"
	"github.com/campushq/campushub/internal/contexts"
	"github.com/campushq/campushub/internal/objects"
	"github.com/campushq/campushub/internal/store"
)

// JSONError returns a JSON error response and adds the error to gin context
// for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// Denied maps an authorization or lookup error to the wire. Denial details
// stay in the logs; every forbidden response reads the same so callers cannot
// probe which check failed, and wiring defects surface as plain server errors.
func Denied(c *gin.Context, err error) {
	_ = c.Error(err)
	contexts.AddError(c.Request.Context(), err)

	status, message := denialStatus(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: message,
		},
	})
}

func denialStatus(err error) (int, string) {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, "Not found"
	}

	failure, ok := authz.AsFailure(err)
	if !ok {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch {
	case failure.Kind == authz.FailureUnauthenticated:
		return http.StatusUnauthorized, "Unauthorized"
	case failure.Kind == authz.FailureNotFound:
		return http.StatusNotFound, "Not found"
	case failure.Kind.ConfigDefect():
		return http.StatusInternalServerError, "Internal server error"
	default:
		return http.StatusForbidden, "Forbidden"
	}
}
