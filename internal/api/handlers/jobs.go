package handlers

import (
	"errors"
	"net/http"
	"time"

	"jobi-server/internal/api/middleware"
	"jobi-server/internal/jobs"
	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"
	"jobi-server/pkg/utils"

	"github.com/labstack/echo/v4"
)

// requestID returns the id tagged by the validation middleware, generating
// one for paths that bypass it
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

// ListJobsHandler serves the public listing: approved jobs narrowed by the
// filter query params and ordered by the sort key
func ListJobsHandler(st store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var query models.ListingQuery
		if err := c.Bind(&query); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Invalid query parameters")
		}

		approved, err := st.ListApproved(c.Request().Context())
		if err != nil {
			logger.Error("Failed to load approved jobs", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "load_failed", "Failed to load jobs")
		}

		filtered := jobs.FilterAndSort(approved, jobs.Filters{
			SearchTerm: query.SearchTerm,
			Location:   query.Location,
			JobType:    query.JobType,
			Salary:     query.Salary,
			SortBy:     query.SortBy,
		})

		return c.JSON(http.StatusOK, models.ListingResponse{
			Jobs:      models.ViewsOf(filtered),
			Total:     len(filtered),
			RequestID: reqID,
		})
	}
}

// JobFacetsHandler serves the distinct filter options present in the
// approved job set
func JobFacetsHandler(st store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.LogWithRequestID(requestID(c))

		approved, err := st.ListApproved(c.Request().Context())
		if err != nil {
			logger.Error("Failed to load approved jobs for facets", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "load_failed", "Failed to load jobs")
		}

		locations, jobTypes := jobs.Facets(approved)
		return c.JSON(http.StatusOK, models.FacetsResponse{
			Locations: locations,
			JobTypes:  jobTypes,
		})
	}
}

// SubmitJobHandler handles posting form submissions. Valid submissions are
// created pending approval; validation failures never reach the store.
func SubmitJobHandler(poster *jobs.Poster) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.SubmitJobRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind submission", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadRequest, "invalid_request", "Invalid request format")
		}

		// The submitting user id comes from the session when present;
		// anonymous submissions stay anonymous
		if user := middleware.CurrentUser(c); user != nil {
			req.PostedBy = user.ID
		}

		created, err := poster.Submit(c.Request().Context(), req)
		if err != nil {
			var verr *jobs.ValidationError
			if errors.As(err, &verr) {
				logger.Info("Submission rejected by validation", map[string]interface{}{
					"reason": verr.Message,
				})
				return errorJSON(c, http.StatusBadRequest, "validation_failed", verr.Message)
			}

			logger.Error("Failed to create job", map[string]interface{}{
				"error": err.Error(),
			})
			return errorJSON(c, http.StatusBadGateway, "submission_failed", "Something went wrong. Try again.")
		}

		logger.Info("Job submitted", map[string]interface{}{
			"job_id":  created.ID,
			"company": created.Company,
		})

		return c.JSON(http.StatusCreated, models.SubmitJobResponse{
			Success:   true,
			Message:   "Job posted successfully! Pending approval.",
			Job:       models.ViewOf(*created),
			RequestID: reqID,
		})
	}
}
