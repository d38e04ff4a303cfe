package generate

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/internal/auth"
	"github.com/atelier-ai/server/internal/errors"
	"github.com/atelier-ai/server/internal/pipeline"
)

// Handler runs one generation request through the pipeline. Failures report
// a generic outcome; the failing stage stays in server logs.
func Handler(orch *pipeline.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		rec, err := orch.Generate(c.Request.Context(), pipeline.Request{
			UserID:        userID,
			Spec:          &req.Spec,
			ExploreMode:   req.ExploreMode,
			UserModifiers: req.UserModifiers,
			TemplateID:    req.TemplateID,
			Width:         req.Width,
			Height:        req.Height,
		})
		if err != nil {
			errors.GenerationFailed(c, err)
			return
		}

		c.JSON(http.StatusCreated, Response{Generation: rec})
	}
}

// BatchHandler accepts several generation requests and runs them in the
// background. The response carries the batch id for status polling; nothing
// waits on the renders.
func BatchHandler(runner *pipeline.BatchRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		requests := make([]pipeline.Request, 0, len(req.Items))
		for i := range req.Items {
			item := &req.Items[i]
			requests = append(requests, pipeline.Request{
				UserID:        userID,
				Spec:          &item.Spec,
				ExploreMode:   item.ExploreMode,
				UserModifiers: item.UserModifiers,
				TemplateID:    item.TemplateID,
				Width:         item.Width,
				Height:        item.Height,
			})
		}

		batch := runner.Start(userID, requests)

		c.JSON(http.StatusAccepted, BatchResponse{Batch: batch})
	}
}

// BatchStatusHandler reports progress for a batch owned by the caller
func BatchStatusHandler(runner *pipeline.BatchRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		batch, found := runner.Get(id, userID)
		if !found {
			errors.NotFound(c, "batch")
			return
		}

		c.JSON(http.StatusOK, BatchStatusResponse{Batch: batch, Progress: batch.Progress()})
	}
}

// ListHandler returns the caller's generation history, newest first
func ListHandler(records RecordGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}

		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		recs, err := records.List(c.Request.Context(), userID, limit, offset)
		if err != nil {
			errors.InternalError(c, "failed to list generations", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Generations: recs, Limit: limit, Offset: offset})
	}
}

// GetHandler returns one persisted generation owned by the caller
func GetHandler(records RecordGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		rec, err := records.Get(c.Request.Context(), id, userID)
		if err != nil {
			errors.NotFound(c, "generation")
			return
		}

		c.JSON(http.StatusOK, Response{Generation: rec})
	}
}
