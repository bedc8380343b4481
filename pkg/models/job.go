package models

import "time"

// JobType is the work arrangement of a posting
type JobType string

const (
	JobTypeRemote JobType = "Remote"
	JobTypeOnSite JobType = "On-site"
	JobTypeHybrid JobType = "Hybrid"
)

// IsValid reports whether t is one of the known job types
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeRemote, JobTypeOnSite, JobTypeHybrid:
		return true
	}
	return false
}

// JobStatus is the moderation state of a posting. It is the single source
// of truth for approval; the boolean convenience view is derived from it.
type JobStatus string

const (
	StatusPending  JobStatus = "pending"
	StatusApproved JobStatus = "approved"
	StatusRejected JobStatus = "rejected"
)

// Job represents a single posting in the jobs collection.
// ID and the timestamp fields are assigned by the store; Status is mutated
// only through the moderation approve/reject operations.
type Job struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	ApplicationURL string     `json:"application_url"`
	Salary         string     `json:"salary,omitempty"`
	Type           JobType    `json:"type,omitempty"`
	Deadline       time.Time  `json:"deadline"`
	PostedBy       string     `json:"posted_by,omitempty"`
	Status         JobStatus  `json:"status"`
	IsFlagged      bool       `json:"is_flagged"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectedAt     *time.Time `json:"rejected_at,omitempty"`
}

// IsApproved is the derived convenience view over Status
func (j *Job) IsApproved() bool {
	return j.Status == StatusApproved
}

// IsPending reports whether the job is still awaiting moderation.
// A job with an unknown or empty status counts as pending as long as it
// has not been rejected.
func (j *Job) IsPending() bool {
	return j.Status != StatusApproved && j.Status != StatusRejected
}

// IsRejected reports whether the job has been rejected
func (j *Job) IsRejected() bool {
	return j.Status == StatusRejected
}

// JobView is the wire representation of a job. It carries the derived
// is_approved field alongside status so clients never compute it themselves.
type JobView struct {
	Job
	IsApproved bool `json:"is_approved"`
}

// ViewOf builds the wire representation of j
func ViewOf(j Job) JobView {
	return JobView{Job: j, IsApproved: j.IsApproved()}
}

// ViewsOf builds wire representations for a slice of jobs
func ViewsOf(jobs []Job) []JobView {
	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, ViewOf(j))
	}
	return views
}
