package jobs

import (
	"context"
	"strings"

	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"
)

// Status filter values accepted by the moderation dashboard
const (
	StatusFilterAll      = "all"
	StatusFilterPending  = "pending"
	StatusFilterApproved = "approved"
	StatusFilterRejected = "rejected"
)

// ModerationFilters is the filter state of the admin dashboard
type ModerationFilters struct {
	SearchTerm string
	Status     string
}

// FilterModeration narrows the unfiltered job set by free-text search over
// title/company and by status. Pending means not approved and not rejected.
func FilterModeration(in []models.Job, f ModerationFilters) []models.Job {
	out := make([]models.Job, 0, len(in))
	for _, job := range in {
		if matchesModeration(job, f) {
			out = append(out, job)
		}
	}
	return out
}

func matchesModeration(job models.Job, f ModerationFilters) bool {
	if term := strings.ToLower(f.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Company), term) {
			return false
		}
	}

	switch f.Status {
	case "", StatusFilterAll:
		return true
	case StatusFilterPending:
		return job.IsPending()
	case StatusFilterApproved:
		return job.IsApproved()
	case StatusFilterRejected:
		return job.IsRejected()
	default:
		return true
	}
}

// Stats carries the dashboard counts, recomputed by full scan on each
// request. Data volumes are small enough that incremental maintenance is
// not worth carrying.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// ComputeStats counts the jobs per moderation state
func ComputeStats(in []models.Job) Stats {
	s := Stats{Total: len(in)}
	for _, job := range in {
		switch {
		case job.IsApproved():
			s.Approved++
		case job.IsRejected():
			s.Rejected++
		default:
			s.Pending++
		}
	}
	return s
}

// Moderator issues approve/reject mutations against the store. Mutations are
// server-authoritative: the returned record is the persisted state, so there
// is no optimistic local copy to drift on failure.
type Moderator struct {
	store  store.JobStore
	logger logging.Logger
}

// NewModerator creates a moderator over the given store
func NewModerator(st store.JobStore) *Moderator {
	return &Moderator{
		store:  st,
		logger: logging.GetGlobalLogger(),
	}
}

// Approve marks the job approved and stamps the approval time. Approving an
// already-approved job is a no-op returning the current record, so the
// observable state is unchanged.
func (m *Moderator) Approve(ctx context.Context, jobID string) (*models.Job, error) {
	return m.setStatus(ctx, jobID, models.StatusApproved)
}

// Reject marks the job rejected, symmetric to Approve
func (m *Moderator) Reject(ctx context.Context, jobID string) (*models.Job, error) {
	return m.setStatus(ctx, jobID, models.StatusRejected)
}

func (m *Moderator) setStatus(ctx context.Context, jobID string, status models.JobStatus) (*models.Job, error) {
	current, err := m.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if current.Status == status {
		return current, nil
	}

	updated, err := m.store.UpdateStatus(ctx, jobID, status)
	if err != nil {
		m.logger.Error("Failed to persist moderation decision", map[string]interface{}{
			"job_id": jobID,
			"status": string(status),
			"error":  err.Error(),
		})
		return nil, err
	}

	m.logger.Info("Moderation decision persisted", map[string]interface{}{
		"job_id": jobID,
		"status": string(status),
	})

	return updated, nil
}

// BulkApprove applies Approve to every id in the selection set and reports
// the outcome per id. A failing id does not stop the batch.
func (m *Moderator) BulkApprove(ctx context.Context, jobIDs []string) []models.BulkResult {
	return m.bulk(ctx, jobIDs, m.Approve)
}

// BulkReject applies Reject to every id in the selection set
func (m *Moderator) BulkReject(ctx context.Context, jobIDs []string) []models.BulkResult {
	return m.bulk(ctx, jobIDs, m.Reject)
}

func (m *Moderator) bulk(ctx context.Context, jobIDs []string, op func(context.Context, string) (*models.Job, error)) []models.BulkResult {
	results := make([]models.BulkResult, 0, len(jobIDs))
	for _, id := range jobIDs {
		job, err := op(ctx, id)
		if err != nil {
			results = append(results, models.BulkResult{JobID: id, Error: err.Error()})
			continue
		}

		view := models.ViewOf(*job)
		results = append(results, models.BulkResult{JobID: id, Success: true, Job: &view})
	}
	return results
}
