package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobi-server/internal/api/handlers"
	"jobi-server/internal/jobs"
	"jobi-server/pkg/models"
)

func listingEcho(fs *fakeStore) *echo.Echo {
	e := echo.New()
	e.GET("/api/v1/jobs", handlers.ListJobsHandler(fs))
	e.GET("/api/v1/jobs/facets", handlers.JobFacetsHandler(fs))
	e.POST("/api/v1/jobs", handlers.SubmitJobHandler(jobs.NewPoster(fs)))
	return e
}

func TestListJobs_OnlyApprovedAreListed(t *testing.T) {
	fs := newFakeStore(
		models.Job{ID: "1", Title: "Engineer", Status: models.StatusApproved},
		models.Job{ID: "2", Title: "Analyst", Status: models.StatusPending},
	)
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodGet, "/api/v1/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ListingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Engineer", resp.Jobs[0].Title)
	assert.True(t, resp.Jobs[0].IsApproved)
	assert.NotEmpty(t, resp.RequestID)
}

func TestListJobs_QueryFiltersApply(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fs := newFakeStore(
		models.Job{ID: "1", Title: "Frontend Developer", Company: "Acme", Location: "Accra", Type: models.JobTypeRemote, Status: models.StatusApproved, CreatedAt: base},
		models.Job{ID: "2", Title: "Frontend Developer", Company: "Beta", Location: "Berlin", Type: models.JobTypeOnSite, Status: models.StatusApproved, CreatedAt: base.Add(time.Hour)},
		models.Job{ID: "3", Title: "Accountant", Company: "Acme", Location: "Accra", Type: models.JobTypeRemote, Status: models.StatusApproved, CreatedAt: base.Add(2 * time.Hour)},
	)
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodGet, "/api/v1/jobs?search=front&location=accra&type=Remote", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ListingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "1", resp.Jobs[0].ID)
}

func TestListJobs_SortParam(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fs := newFakeStore(
		models.Job{ID: "old", Title: "Old", Status: models.StatusApproved, CreatedAt: base},
		models.Job{ID: "new", Title: "New", Status: models.StatusApproved, CreatedAt: base.Add(time.Hour)},
	)
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodGet, "/api/v1/jobs?sort=oldest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ListingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, "old", resp.Jobs[0].ID)
}

func TestListJobs_StoreFailureDegradesToError(t *testing.T) {
	fs := newFakeStore()
	fs.listErr = errStoreDown
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodGet, "/api/v1/jobs", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "load_failed", resp.Error)
	assert.Contains(t, resp.Message, "Failed to load")
}

func TestJobFacets(t *testing.T) {
	fs := newFakeStore(
		models.Job{ID: "1", Location: "Accra", Type: models.JobTypeRemote, Status: models.StatusApproved},
		models.Job{ID: "2", Location: "Berlin", Type: models.JobTypeRemote, Status: models.StatusApproved},
		models.Job{ID: "3", Location: "Lagos", Type: models.JobTypeHybrid, Status: models.StatusPending},
	)
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodGet, "/api/v1/jobs/facets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FacetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Facets reflect the approved set only
	assert.Equal(t, []string{"Accra", "Berlin"}, resp.Locations)
	assert.Equal(t, []string{"Remote"}, resp.JobTypes)
}

func TestSubmitJob_Valid(t *testing.T) {
	fs := newFakeStore()
	e := listingEcho(fs)

	deadline := time.Now().AddDate(0, 1, 0).Format(jobs.DeadlineLayout)
	body := `{
		"title": "Backend Engineer",
		"company": "Jobi Labs",
		"location": "Accra",
		"description": "Build things",
		"application_url": "https://jobs.example.com/apply",
		"deadline": "` + deadline + `"
	}`

	rec := doJSON(e, http.MethodPost, "/api/v1/jobs", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.SubmitJobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Pending approval")
	assert.Equal(t, "pending", string(resp.Job.Status))
	assert.False(t, resp.Job.IsApproved)
	assert.Equal(t, 1, fs.creates)
}

func TestSubmitJob_PastDeadlineRejectedBeforeStore(t *testing.T) {
	fs := newFakeStore()
	e := listingEcho(fs)

	deadline := time.Now().AddDate(0, 0, -2).Format(jobs.DeadlineLayout)
	body := `{
		"title": "Backend Engineer",
		"company": "Jobi Labs",
		"location": "Accra",
		"description": "Build things",
		"application_url": "https://jobs.example.com/apply",
		"deadline": "` + deadline + `"
	}`

	rec := doJSON(e, http.MethodPost, "/api/v1/jobs", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Contains(t, resp.Message, "future")
	assert.Zero(t, fs.creates, "no create call issued")
}

func TestSubmitJob_MissingFields(t *testing.T) {
	fs := newFakeStore()
	e := listingEcho(fs)

	rec := doJSON(e, http.MethodPost, "/api/v1/jobs", `{"title": "Only a title"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "company")
	assert.Contains(t, resp.Message, "deadline")
	assert.Zero(t, fs.creates)
}
