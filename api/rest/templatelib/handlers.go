// Package templatelib exposes the read-only template catalogue so clients
// can offer explicit template overrides.
package templatelib

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/internal/errors"
	"github.com/atelier-ai/server/internal/templates"
)

// ListHandler returns every template
func ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ListResponse{Templates: templates.All()})
	}
}

// GetHandler returns one template by id
func GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := templates.ByID(c.Param("id"))
		if !ok {
			errors.NotFound(c, "template")
			return
		}

		c.JSON(http.StatusOK, t)
	}
}
