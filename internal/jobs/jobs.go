// File path: internal/jobs/jobs.go
package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
)

// Job is the bookkeeping record for one document-generation request. A job
// that finished with an error still reaches StatusDone; Error carries the
// failure and ResultPath stays empty. No automatic retries happen at this
// layer.
type Job struct {
	ID         string    `db:"id" json:"id"`
	Status     Status    `db:"status" json:"status"`
	Attempts   int       `db:"attempts" json:"attempts"`
	ResultPath string    `db:"result_path" json:"result_path,omitempty"`
	Error      string    `db:"error" json:"error,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Store abstracts job bookkeeping so the pipeline itself stays stateless per
// call. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context) (Job, error)
	Get(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, job Job) error
	List(ctx context.Context) ([]Job, error)
}

// NewStore selects a backend: empty DSN for the in-memory store, otherwise a
// SQLite database path.
func NewStore(dsn string) (Store, error) {
	if dsn == "" {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(dsn)
}

// MemoryStore keeps jobs in a mutex-guarded map. State does not survive a
// restart.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]Job)}
}

func (s *MemoryStore) Create(ctx context.Context) (Job, error) {
	now := time.Now().UTC()
	job := Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (s *MemoryStore) Update(ctx context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return ErrNotFound
	}
	job.UpdatedAt = time.Now().UTC()
	s.jobs[job.ID] = job
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Job, error) {
	s.mu.RLock()
	out := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
