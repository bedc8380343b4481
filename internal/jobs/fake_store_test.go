package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jobi-server/internal/store"
	"jobi-server/pkg/models"
)

// fakeStore is an in-memory test double for the document store gateway
type fakeStore struct {
	mu      sync.Mutex
	docs    map[string]models.Job
	order   []string
	nextID  int
	updates int
	creates int

	failList   error
	failGet    error
	failCreate error
	failUpdate error
}

func newFakeStore(seed ...models.Job) *fakeStore {
	fs := &fakeStore{docs: make(map[string]models.Job)}
	for _, j := range seed {
		fs.docs[j.ID] = j
		fs.order = append(fs.order, j.ID)
	}
	return fs
}

func (f *fakeStore) ListAll(ctx context.Context) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failList != nil {
		return nil, f.failList
	}

	out := make([]models.Job, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.docs[id])
	}
	return out, nil
}

func (f *fakeStore) ListApproved(ctx context.Context) ([]models.Job, error) {
	all, err := f.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	approved := make([]models.Job, 0, len(all))
	for _, j := range all {
		if j.IsApproved() {
			approved = append(approved, j)
		}
	}
	return approved, nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failGet != nil {
		return nil, f.failGet
	}

	job, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &job, nil
}

func (f *fakeStore) Create(ctx context.Context, job models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate != nil {
		return nil, f.failCreate
	}

	f.nextID++
	f.creates++
	now := time.Now().UTC()
	job.ID = fmt.Sprintf("job-%d", f.nextID)
	job.CreatedAt = now
	job.UpdatedAt = now

	f.docs[job.ID] = job
	f.order = append(f.order, job.ID)
	return &job, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate != nil {
		return nil, f.failUpdate
	}

	job, ok := f.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	f.updates++
	now := time.Now().UTC()
	job.Status = status
	job.UpdatedAt = now
	switch status {
	case models.StatusApproved:
		job.ApprovedAt = &now
	case models.StatusRejected:
		job.RejectedAt = &now
	}

	f.docs[id] = job
	return &job, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                   { return nil }

var errStoreDown = errors.New("store unreachable")
