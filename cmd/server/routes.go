package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/api/rest/feedback"
	"github.com/atelier-ai/server/api/rest/generate"
	"github.com/atelier-ai/server/api/rest/health"
	"github.com/atelier-ai/server/api/rest/portfolio"
	"github.com/atelier-ai/server/api/rest/templatelib"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(corsMiddleware())
	router.GET("/health", health.Handler(server.db))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		portfolio.RegisterRoutes(v1, server.repos.Portfolio, server.services.Profiler)
		generate.RegisterRoutes(v1, server.services.Orchestrator, server.services.Batches, server.repos.Generations)
		feedback.RegisterRoutes(v1, server.repos.Generations, server.repos.Feedback, server.services.Processor)
		templatelib.RegisterRoutes(v1)
	}
}

func corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}

	return cors.New(corsConfig)
}
