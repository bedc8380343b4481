package jobs

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"
)

var validate = validator.New()

// DeadlineLayout is the calendar date format accepted by the posting form
const DeadlineLayout = "2006-01-02"

// ValidationError is a submission rejection with a user-facing message.
// No create call is issued when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Poster validates and submits new job records
type Poster struct {
	store  store.JobStore
	now    func() time.Time
	logger logging.Logger
}

// NewPoster creates a posting controller over the given store
func NewPoster(st store.JobStore) *Poster {
	return &Poster{
		store:  st,
		now:    time.Now,
		logger: logging.GetGlobalLogger(),
	}
}

// Submit validates the form and creates the job record pending approval.
// Validation failures return *ValidationError; anything else is a store
// failure after validation passed.
func (p *Poster) Submit(ctx context.Context, req models.SubmitJobRequest) (*models.Job, error) {
	job, err := p.buildJob(req)
	if err != nil {
		return nil, err
	}

	created, err := p.store.Create(ctx, *job)
	if err != nil {
		p.logger.Error("Failed to persist job submission", map[string]interface{}{
			"company": req.Company,
			"error":   err.Error(),
		})
		return nil, err
	}

	return created, nil
}

// buildJob validates the submission and constructs the record to persist
func (p *Poster) buildJob(req models.SubmitJobRequest) (*models.Job, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, &ValidationError{
			Message: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	deadline, err := p.parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	if !isURLOrEmail(strings.TrimSpace(req.ApplicationURL)) {
		return nil, &ValidationError{Message: "enter a valid URL or email"}
	}

	jobType := models.JobType(strings.TrimSpace(req.Type))
	if jobType == "" {
		// The form preselects Remote
		jobType = models.JobTypeRemote
	}
	if !jobType.IsValid() {
		return nil, &ValidationError{
			Message: fmt.Sprintf("invalid job type: %s", req.Type),
		}
	}

	job := &models.Job{
		Title:          strings.TrimSpace(req.Title),
		Company:        strings.TrimSpace(req.Company),
		Location:       strings.TrimSpace(req.Location),
		Description:    strings.TrimSpace(req.Description),
		ApplicationURL: strings.TrimSpace(req.ApplicationURL),
		Salary:         strings.TrimSpace(req.Salary),
		Type:           jobType,
		Deadline:       deadline,
		Status:         models.StatusPending,
		IsFlagged:      false,
	}

	// Anonymous submission is allowed; PostedBy is set only when supplied
	if posted := strings.TrimSpace(req.PostedBy); posted != "" {
		job.PostedBy = posted
	}

	return job, nil
}

// missingFields returns the names of required fields that are empty after
// trimming, in form order
func missingFields(req models.SubmitJobRequest) []string {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"title", req.Title},
		{"company", req.Company},
		{"location", req.Location},
		{"application_url", req.ApplicationURL},
		{"description", req.Description},
		{"deadline", req.Deadline},
	}

	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	return missing
}

// parseDeadline accepts a calendar date that is today or later
func (p *Poster) parseDeadline(raw string) (time.Time, error) {
	deadline, err := time.Parse(DeadlineLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &ValidationError{Message: "deadline must be today or in the future"}
	}

	now := p.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if deadline.Before(today) {
		return time.Time{}, &ValidationError{Message: "deadline must be today or in the future"}
	}

	return deadline, nil
}

// isURLOrEmail reports whether v is a syntactically valid absolute URL or a
// syntactically valid email address
func isURLOrEmail(v string) bool {
	if u, err := url.Parse(v); err == nil && u.IsAbs() && u.Host != "" {
		return true
	}
	return validate.Var(v, "email") == nil
}
