package feedback

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/atelier/feedbackevents"
	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/internal/auth"
	"github.com/atelier-ai/server/internal/errors"
	fb "github.com/atelier-ai/server/internal/feedback"
	"github.com/atelier-ai/server/internal/logger"
)

// RecordGetter resolves a feedback submission against its generation
type RecordGetter interface {
	Get(ctx context.Context, id, userID string) (*generations.Record, error)
}

// EventStore persists the append-only reaction log and owns the
// (generation, feedback type) dedup key
type EventStore interface {
	Insert(ctx context.Context, e *feedbackevents.Event) (bool, error)
	Delete(ctx context.Context, generationID, feedbackType string) error
	ListByGeneration(ctx context.Context, generationID string) ([]feedbackevents.Event, error)
}

// Handler resolves the event against its generation record and applies the
// reward to the prompt's learned and exploratory tokens. Events referencing
// unknown generations are dropped with a warning, never an error.
func Handler(records RecordGetter, eventsRepo EventStore, processor *fb.Processor) gin.HandlerFunc {
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

		event := fb.Event{
			GenerationID:      req.GenerationID,
			UserID:            userID,
			Type:              fb.EventType(req.FeedbackType),
			TimeViewedSeconds: req.TimeViewedSeconds,
		}

		if !event.Valid() {
			errors.BadRequest(c, "unknown feedback type", nil)
			return
		}

		ctx := c.Request.Context()

		rec, err := records.Get(ctx, req.GenerationID, userID)
		if err != nil {
			if stderrors.Is(err, generations.ErrRecordNotFound) {
				// a stale or fabricated id must not crash the feedback path
				logger.Warn("feedback for unknown generation dropped",
					"generation_id", req.GenerationID,
					"user_id", userID,
				)
				c.JSON(http.StatusAccepted, Response{Accepted: false})
				return
			}

			errors.InternalError(c, "failed to load generation", err)
			return
		}

		reward, err := event.Reward()
		if err != nil {
			errors.BadRequest(c, "unknown feedback type", err)
			return
		}

		inserted, err := eventsRepo.Insert(ctx, &feedbackevents.Event{
			GenerationID:      rec.ID,
			UserID:            userID,
			FeedbackType:      string(event.Type),
			Reward:            reward,
			TimeViewedSeconds: req.TimeViewedSeconds,
		})
		if err != nil {
			errors.InternalError(c, "failed to record feedback event", err)
			return
		}

		if !inserted {
			// client retry of an already-applied reaction
			c.JSON(http.StatusOK, Response{Accepted: true, Duplicate: true})
			return
		}

		deltas, err := processor.Record(ctx, event, rec.Segments)
		if err != nil {
			// release the dedup key so a retry runs the full scoring pass
			// again instead of hitting the duplicate branch with no scores
			// ever applied
			if delErr := eventsRepo.Delete(ctx, rec.ID, string(event.Type)); delErr != nil {
				logger.Warn("failed to release feedback dedup key after scoring error",
					"generation_id", rec.ID,
					"feedback_type", event.Type,
					"error", delErr,
				)
			}

			errors.InternalError(c, "failed to apply feedback", err)
			return
		}

		c.JSON(http.StatusOK, Response{Accepted: true, Deltas: deltas})
	}
}

// ListHandler returns the reactions recorded against one of the caller's
// generations, so clients can show which buttons are already pressed
func ListHandler(records RecordGetter, eventsRepo EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		generationID, ok := errors.ValidatePathUUID(c, "generation_id")
		if !ok {
			return
		}

		ctx := c.Request.Context()

		// ownership check before exposing the event log
		if _, err := records.Get(ctx, generationID, userID); err != nil {
			errors.NotFound(c, "generation")
			return
		}

		events, err := eventsRepo.ListByGeneration(ctx, generationID)
		if err != nil {
			errors.InternalError(c, "failed to list feedback events", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Events: events})
	}
}
