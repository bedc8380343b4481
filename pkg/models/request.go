package models

// SubmitJobRequest represents the request payload for submitting a new posting
type SubmitJobRequest struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ApplicationURL string `json:"application_url"`
	Salary         string `json:"salary,omitempty"`
	Type           string `json:"type,omitempty"`
	Deadline       string `json:"deadline"` // calendar date, YYYY-MM-DD
	PostedBy       string `json:"posted_by,omitempty"`
}

// ListingQuery carries the filter and sort criteria for the public listing
type ListingQuery struct {
	SearchTerm string `query:"search"`
	Location   string `query:"location"`
	JobType    string `query:"type"`
	Salary     string `query:"salary"`
	SortBy     string `query:"sort"` // newest, oldest, company, title
}

// ModerationQuery carries the filter criteria for the admin dashboard
type ModerationQuery struct {
	SearchTerm string `query:"search"`
	Status     string `query:"status"` // all, pending, approved, rejected
}

// BulkModerationRequest represents a batch approve/reject request
type BulkModerationRequest struct {
	JobIDs []string `json:"job_ids" validate:"required,min=1,dive,required"`
}

// LoginRequest represents an email/password credential exchange
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
