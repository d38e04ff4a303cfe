package templatelib

import "github.com/gin-gonic/gin"

// templates are static reference data, so the routes take no dependencies
// and no auth
func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/templates", ListHandler())
	router.GET("/templates/:id", GetHandler())
}
