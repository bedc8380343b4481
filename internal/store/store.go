// Package store defines the gateway to the hosted document store that owns
// all persistent job state. The application itself never owns job data; it
// holds transient copies fetched through this interface.
package store

import (
	"context"
	"errors"

	"jobi-server/pkg/models"
)

// ErrNotFound is returned when a document id does not exist in the collection
var ErrNotFound = errors.New("document not found")

// JobStore is the repository gateway for the jobs collection. Implementations
// are constructed at the composition root and injected; tests substitute
// in-memory doubles. No delete operation is exposed.
type JobStore interface {
	// ListAll returns every job document regardless of status
	ListAll(ctx context.Context) ([]models.Job, error)

	// ListApproved returns the jobs where status == approved
	ListApproved(ctx context.Context) ([]models.Job, error)

	// Get returns a single job by document id
	Get(ctx context.Context, id string) (*models.Job, error)

	// Create appends a new document, assigning its id and server timestamps.
	// The stored record is returned.
	Create(ctx context.Context, job models.Job) (*models.Job, error)

	// UpdateStatus patches the moderation status and its timestamp fields by
	// document id and returns the persisted record
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error)

	// Ping verifies connectivity to the store
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
