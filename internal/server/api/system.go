package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campushub/internal/build"
)

func NewSystemHandlers() *SystemHandlers {
	return &SystemHandlers{}
}

type SystemHandlers struct{}

// Health is the liveness probe.
func (h *SystemHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": build.Version,
	})
}
