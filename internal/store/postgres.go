package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id SERIAL PRIMARY KEY,
			kind TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			bytes BIGINT NOT NULL DEFAULT 0,
			elapsed_ns BIGINT NOT NULL DEFAULT 0,
			throughput_mbps DOUBLE PRECISION NOT NULL DEFAULT 0,
			page_faults BIGINT NOT NULL DEFAULT 0,
			trials BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run and returns its id.
func (s *PostgresStore) SaveRun(run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var id int64
	err := s.db.QueryRow(
		`INSERT INTO runs (kind, label, bytes, elapsed_ns, throughput_mbps, page_faults, trials, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		run.Kind, run.Label, run.Bytes, run.ElapsedNs, run.ThroughputMBps,
		run.PageFaults, run.Trials, run.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. An empty kind matches
// every kind.
func (s *PostgresStore) ListRuns(kind string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, kind, label, bytes, elapsed_ns, throughput_mbps, page_faults, trials, created_at
	          FROM runs`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
		args = append(args, kind, limit)
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Label, &r.Bytes, &r.ElapsedNs,
			&r.ThroughputMBps, &r.PageFaults, &r.Trials, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the newest run of the given kind, or nil when there is
// none.
func (s *PostgresStore) LatestRun(kind string) (*Run, error) {
	runs, err := s.ListRuns(kind, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
