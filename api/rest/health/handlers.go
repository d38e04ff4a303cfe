package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler reports process liveness and database reachability
func Handler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{Status: "ok", Database: "ok"}

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Database = "unreachable"
			}
		} else {
			resp.Database = "not configured"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, resp)
	}
}
