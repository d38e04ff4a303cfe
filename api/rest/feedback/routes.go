package feedback

import (
	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/internal/auth"
	fb "github.com/atelier-ai/server/internal/feedback"
)

func RegisterRoutes(router *gin.RouterGroup, records RecordGetter, eventsRepo EventStore, processor *fb.Processor) {
	group := router.Group("/feedback")
	group.Use(auth.AuthMiddleware())
	{
		group.POST("", Handler(records, eventsRepo, processor))
		group.GET("/:generation_id", ListHandler(records, eventsRepo))
	}
}
