package generate

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/internal/auth"
	"github.com/atelier-ai/server/internal/pipeline"
)

// RecordGetter loads persisted generations for the read endpoints
type RecordGetter interface {
	Get(ctx context.Context, id, userID string) (*generations.Record, error)
	List(ctx context.Context, userID string, limit, offset int) ([]generations.Record, error)
}

// renders are expensive provider calls; cap each client well below the
// provider's own limits
var generateRate = limiter.Rate{
	Period: 1 * time.Minute,
	Limit:  10,
}

func RegisterRoutes(router *gin.RouterGroup, orch *pipeline.Orchestrator, runner *pipeline.BatchRunner, records RecordGetter) {
	rateMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), generateRate))

	group := router.Group("/generate")
	group.Use(auth.AuthMiddleware())
	{
		group.POST("", rateMiddleware, Handler(orch))
		group.GET("", ListHandler(records))
		group.GET("/:id", GetHandler(records))
	}

	// batches live under their own prefix so the status route does not
	// collide with the /generate/:id wildcard
	batches := router.Group("/batches")
	batches.Use(auth.AuthMiddleware())
	{
		batches.POST("", rateMiddleware, BatchHandler(runner))
		batches.GET("/:id", BatchStatusHandler(runner))
	}
}
