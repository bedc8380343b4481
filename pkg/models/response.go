package models

import "time"

// ListingResponse is the public listing of approved jobs after filtering
// and sorting
type ListingResponse struct {
	Jobs      []JobView `json:"jobs"`
	Total     int       `json:"total"`
	RequestID string    `json:"request_id"`
}

// FacetsResponse lists the distinct filter options present in the
// approved job set
type FacetsResponse struct {
	Locations []string `json:"locations"`
	JobTypes  []string `json:"job_types"`
}

// SubmitJobResponse confirms a posting submission
type SubmitJobResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Job       JobView `json:"job"`
	RequestID string  `json:"request_id"`
}

// ModerationListResponse is the admin view over the unfiltered job set
type ModerationListResponse struct {
	Jobs      []JobView `json:"jobs"`
	Total     int       `json:"total"`
	RequestID string    `json:"request_id"`
}

// ModerationResponse is the outcome of a single approve/reject mutation.
// Job reflects the persisted record, not an optimistic local copy.
type ModerationResponse struct {
	Success   bool    `json:"success"`
	Job       JobView `json:"job"`
	RequestID string  `json:"request_id"`
}

// BulkResult is the per-id outcome of a batch moderation call
type BulkResult struct {
	JobID   string   `json:"job_id"`
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Job     *JobView `json:"job,omitempty"`
}

// BulkModerationResponse reports partial failure per id
type BulkModerationResponse struct {
	Results   []BulkResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	RequestID string       `json:"request_id"`
}

// StatsResponse carries the moderation dashboard counts
type StatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// SessionResponse describes the current session
type SessionResponse struct {
	User    *User `json:"user"`
	IsAdmin bool  `json:"is_admin"`
}

// LoginResponse is the result of a successful credential exchange
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
	IsAdmin   bool      `json:"is_admin"`
}

// User is the descriptor of an authenticated identity
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
