package portfolio

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-ai/server/atelier/portfolio"
	"github.com/atelier-ai/server/internal/auth"
	"github.com/atelier-ai/server/internal/errors"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/vlt"
)

// AnalyzeHandler stores a batch of analysis records and rebuilds the user's
// style profile from their full portfolio
func AnalyzeHandler(portfolioRepo *portfolio.Repository, profiler *styleprofile.Profiler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		if err := portfolioRepo.InsertRecords(ctx, userID, req.Records); err != nil {
			errors.InternalError(c, "failed to store analysis records", err)
			return
		}

		// rebuild from the whole portfolio, not just this upload
		records, err := portfolioRepo.ListByUser(ctx, userID)
		if err != nil {
			errors.InternalError(c, "failed to load portfolio", err)
			return
		}

		profile, err := profiler.BuildProfile(ctx, userID, toPointers(records))
		if err != nil {
			var insufficientErr *styleprofile.InsufficientDataError
			if stderrors.As(err, &insufficientErr) {
				errors.InsufficientData(c, insufficientErr.Error())
				return
			}

			errors.InternalError(c, "failed to build style profile", err)
			return
		}

		c.JSON(http.StatusOK, AnalyzeResponse{Profile: profile})
	}
}

// ProfileHandler returns the user's latest style profile, or a specific
// historical one when ?version= is given. Cold start is a valid engine state
// (nil profile) and maps to 404 only here at the edge.
func ProfileHandler(profiler *styleprofile.Profiler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var (
			profile *styleprofile.Profile
			err     error
		)

		if raw := c.Query("version"); raw != "" {
			version, convErr := strconv.Atoi(raw)
			if convErr != nil || version < 1 {
				errors.BadRequest(c, "version must be a positive integer", convErr)
				return
			}

			profile, err = profiler.GetProfileVersion(c.Request.Context(), userID, version)
		} else {
			profile, err = profiler.GetProfile(c.Request.Context(), userID)
		}

		if err != nil {
			errors.InternalError(c, "failed to load style profile", err)
			return
		}

		if profile == nil {
			errors.NotFound(c, "style profile")
			return
		}

		c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
	}
}

// SimilarHandler finds the caller's closest portfolio images to a style
// embedding, for "more like this" lookups in the studio UI
func SimilarHandler(portfolioRepo *portfolio.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req SimilarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		limit := req.Limit
		if limit == 0 {
			limit = 5
		}

		matches, err := portfolioRepo.Similar(c.Request.Context(), userID, req.Embedding, limit)
		if err != nil {
			errors.InternalError(c, "failed to search portfolio", err)
			return
		}

		c.JSON(http.StatusOK, SimilarResponse{Matches: matches})
	}
}

func toPointers(specs []vlt.Spec) []*vlt.Spec {
	out := make([]*vlt.Spec, len(specs))
	for i := range specs {
		out[i] = &specs[i]
	}

	return out
}
