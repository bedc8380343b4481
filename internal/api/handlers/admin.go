package handlers

import (
	"context"
	"errors"
	"net/http"

	"jobi-server/internal/jobs"
	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// AdminListJobsHandler serves the unfiltered job set for the moderation
// dashboard, narrowed by free-text search and status filter
func AdminListJobsHandler(st store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var query models.ModerationQuery
		if err := c.Bind(&query); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Invalid query parameters")
		}

		all, err := st.ListAll(c.Request().Context())
		if err != nil {
			logger.Error("Failed to load jobs for moderation", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "load_failed", "Failed to load jobs")
		}

		filtered := jobs.FilterModeration(all, jobs.ModerationFilters{
			SearchTerm: query.SearchTerm,
			Status:     query.Status,
		})

		return c.JSON(http.StatusOK, models.ModerationListResponse{
			Jobs:      models.ViewsOf(filtered),
			Total:     len(filtered),
			RequestID: reqID,
		})
	}
}

// AdminStatsHandler serves the dashboard counts, recomputed per request
func AdminStatsHandler(st store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.LogWithRequestID(requestID(c))

		all, err := st.ListAll(c.Request().Context())
		if err != nil {
			logger.Error("Failed to load jobs for stats", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "load_failed", "Failed to load jobs")
		}

		stats := jobs.ComputeStats(all)
		return c.JSON(http.StatusOK, models.StatsResponse{
			Total:    stats.Total,
			Pending:  stats.Pending,
			Approved: stats.Approved,
			Rejected: stats.Rejected,
		})
	}
}

// ApproveJobHandler approves a single job by id
func ApproveJobHandler(moderator *jobs.Moderator) echo.HandlerFunc {
	return moderationHandler(moderator.Approve, "approve")
}

// RejectJobHandler rejects a single job by id
func RejectJobHandler(moderator *jobs.Moderator) echo.HandlerFunc {
	return moderationHandler(moderator.Reject, "reject")
}

// moderationHandler wraps a single-id moderation operation. The response
// body is the persisted record, so clients reconcile against actual state
// rather than keeping an optimistic copy.
func moderationHandler(op func(context.Context, string) (*models.Job, error), action string) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		jobID := c.Param("id")
		if jobID == "" {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Missing job id")
		}

		job, err := op(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errorJSON(c, http.StatusNotFound, "not_found", "No job with that id")
			}

			logger.Error("Moderation mutation failed", map[string]interface{}{
				"job_id": jobID,
				"action": action,
				"error":  err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "mutation_failed", "Failed to persist moderation decision")
		}

		return c.JSON(http.StatusOK, models.ModerationResponse{
			Success:   true,
			Job:       models.ViewOf(*job),
			RequestID: reqID,
		})
	}
}

// BulkApproveHandler applies approve to every id in the selection set
func BulkApproveHandler(moderator *jobs.Moderator) echo.HandlerFunc {
	return bulkModerationHandler(moderator.BulkApprove)
}

// BulkRejectHandler applies reject to every id in the selection set
func BulkRejectHandler(moderator *jobs.Moderator) echo.HandlerFunc {
	return bulkModerationHandler(moderator.BulkReject)
}

func bulkModerationHandler(op func(context.Context, []string) []models.BulkResult) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		var req models.BulkModerationRequest
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Invalid request format")
		}

		if err := validate.Struct(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "validation_failed", err.Error())
		}

		results := op(c.Request().Context(), req.JobIDs)

		succeeded := 0
		for _, r := range results {
			if r.Success {
				succeeded++
			}
		}

		return c.JSON(http.StatusOK, models.BulkModerationResponse{
			Results:   results,
			Succeeded: succeeded,
			Failed:    len(results) - succeeded,
			RequestID: reqID,
		})
	}
}
