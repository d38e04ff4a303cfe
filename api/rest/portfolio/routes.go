package portfolio

import (
	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/atelier/portfolio"
	"github.com/atelier-ai/server/internal/auth"
	"github.com/atelier-ai/server/internal/styleprofile"
)

func RegisterRoutes(router *gin.RouterGroup, portfolioRepo *portfolio.Repository, profiler *styleprofile.Profiler) {
	group := router.Group("/portfolio")
	group.Use(auth.AuthMiddleware())
	{
		group.POST("/analyze", AnalyzeHandler(portfolioRepo, profiler))
		group.GET("/profile", ProfileHandler(profiler))
		group.POST("/similar", SimilarHandler(portfolioRepo))
	}
}
