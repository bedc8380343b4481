// Package redisjobs implements the job repository gateway against a hosted
// Redis document collection. Each job is one JSON document keyed by id, with
// a set holding the collection index. Concurrent writers are not serialized
// here; the store's last-write-wins semantics govern conflicting updates.
package redisjobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobi-server/internal/config"
	"jobi-server/internal/logging"
	"jobi-server/internal/store"
	"jobi-server/pkg/models"
	"jobi-server/pkg/utils"
)

// Store is the Redis-backed implementation of store.JobStore
type Store struct {
	client     *redis.Client
	collection string
	timeout    time.Duration
	logger     logging.Logger
}

// New creates a new Redis-backed job store from configuration
func New(cfg *config.Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.Store.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}

	if cfg.Store.Password != "" {
		opts.Password = cfg.Store.Password
	}
	opts.DB = cfg.Store.DB
	opts.DialTimeout = cfg.Store.Timeout
	opts.ReadTimeout = cfg.Store.Timeout
	opts.WriteTimeout = cfg.Store.Timeout

	return &Store{
		client:     redis.NewClient(opts),
		collection: cfg.Store.Collection,
		timeout:    cfg.Store.Timeout,
		logger:     logging.GetGlobalLogger(),
	}, nil
}

// Ping tests the store connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the store connection
func (s *Store) Close() error {
	return s.client.Close()
}

// ListAll returns every job document in the collection
func (s *Store) ListAll(ctx context.Context) ([]models.Job, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read collection index: %w", err)
	}

	if len(ids) == 0 {
		return []models.Job{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.docKey(id))
	}

	raw, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job documents: %w", err)
	}

	jobs := make([]models.Job, 0, len(raw))
	for i, v := range raw {
		doc, ok := v.(string)
		if !ok {
			// Index entry without a document; skip rather than fail the read
			s.logger.Warn("Dangling index entry in jobs collection", map[string]interface{}{
				"job_id": ids[i],
			})
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(doc), &job); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job document %s: %w", ids[i], err)
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// ListApproved returns the jobs where status == approved
func (s *Store) ListApproved(ctx context.Context) ([]models.Job, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	approved := make([]models.Job, 0, len(all))
	for _, job := range all {
		if job.IsApproved() {
			approved = append(approved, job)
		}
	}

	return approved, nil
}

// Get returns a single job by document id
func (s *Store) Get(ctx context.Context, id string) (*models.Job, error) {
	doc, err := s.client.Get(ctx, s.docKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch job document: %w", err)
	}

	var job models.Job
	if err := json.Unmarshal([]byte(doc), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job document %s: %w", id, err)
	}

	return &job, nil
}

// Create appends a new document with an assigned id and server timestamps
func (s *Store) Create(ctx context.Context, job models.Job) (*models.Job, error) {
	now := time.Now().UTC()
	job.ID = utils.GenerateDocumentID()
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := s.write(ctx, &job); err != nil {
		return nil, err
	}

	if err := s.client.SAdd(ctx, s.indexKey(), job.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index job document: %w", err)
	}

	s.logger.Info("Job document created", map[string]interface{}{
		"job_id":  job.ID,
		"company": job.Company,
	})

	return &job, nil
}

// UpdateStatus patches the moderation status by document id. The approval
// timestamps are stamped together with the status so the record never
// carries a divergent state.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job.Status = status
	job.UpdatedAt = now

	switch status {
	case models.StatusApproved:
		job.ApprovedAt = &now
	case models.StatusRejected:
		job.RejectedAt = &now
	}

	if err := s.write(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *Store) write(ctx context.Context, job *models.Job) error {
	doc, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job document: %w", err)
	}

	// Documents never expire; the store is the sole persistent owner
	if err := s.client.Set(ctx, s.docKey(job.ID), doc, 0).Err(); err != nil {
		return fmt.Errorf("failed to write job document: %w", err)
	}

	return nil
}

func (s *Store) docKey(id string) string {
	return fmt.Sprintf("%s:doc:%s", s.collection, id)
}

func (s *Store) indexKey() string {
	return fmt.Sprintf("%s:index", s.collection)
}
