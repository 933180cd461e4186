// File path: internal/jobs/sqlite.go
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/specdraft/specdraft/internal/common"
)

const jobsSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0,
	result_path TEXT NOT NULL DEFAULT '',
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteStore persists jobs so poll URLs stay valid across restarts.
type SQLiteStore struct {
	db *sqlx.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	logger := common.Logger()
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open job store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(jobsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate job store: %w", err)
	}
	logger.Info("jobs: sqlite store ready", "path", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Create(ctx context.Context) (Job, error) {
	now := time.Now().UTC()
	job := Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO jobs (id, status, attempts, result_path, error, created_at, updated_at)
		VALUES (:id, :status, :attempts, :result_path, :error, :created_at, :updated_at)`, job)
	if err != nil {
		return Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Job, error) {
	var job Job
	err := s.db.GetContext(ctx, &job, `SELECT * FROM jobs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("load job %s: %w", id, err)
	}
	return job, nil
}

func (s *SQLiteStore) Update(ctx context.Context, job Job) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE jobs SET status = :status, attempts = :attempts, result_path = :result_path,
			error = :error, updated_at = :updated_at
		WHERE id = :id`, job)
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Job, error) {
	var out []Job
	if err := s.db.SelectContext(ctx, &out, `SELECT * FROM jobs ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return out, nil
}
