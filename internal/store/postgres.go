package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-studio/internal/types"
)

// Schema creates the tables the PostgresStore needs. Applied by Migrate;
// idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS resumes (
    id         UUID PRIMARY KEY,
    user_id    TEXT,
    title      TEXT NOT NULL,
    data       JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS job_analyses (
    id              UUID PRIMARY KEY,
    resume_id       UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
    job_description TEXT NOT NULL,
    analysis        JSONB NOT NULL,
    tailored_resume JSONB,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_job_analyses_resume_id ON job_analyses(resume_id);
`

// PostgresStore persists records in PostgreSQL with resume and analysis
// content as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore establishes a connection pool and verifies it.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate applies the schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateResume(ctx context.Context, title string, data types.ResumeData) (*types.Resume, error) {
	dataJSON, err := json.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	resume := &types.Resume{ID: uuid.NewString(), Title: title, Data: data}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, title, data)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		resume.ID, title, dataJSON,
	).Scan(&resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

func (s *PostgresStore) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(user_id, ''), title, data, created_at, updated_at
		 FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

func (s *PostgresStore) UpdateResume(ctx context.Context, id, title string, data types.ResumeData) (*types.Resume, error) {
	dataJSON, err := json.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	resume := &types.Resume{ID: id, Title: title, Data: data}
	err = s.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $1, data = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING COALESCE(user_id, ''), created_at, updated_at`,
		title, dataJSON, id,
	).Scan(&resume.UserID, &resume.CreatedAt, &resume.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update resume %s: %w", id, err)
	}
	return resume, nil
}

func (s *PostgresStore) DeleteResume(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListResumes(ctx context.Context) ([]*types.Resume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(user_id, ''), title, data, created_at, updated_at
		 FROM resumes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	out := make([]*types.Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateAnalysis(ctx context.Context, record *types.JobAnalysisRecord) (*types.JobAnalysisRecord, error) {
	analysisJSON, err := json.Marshal(&record.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	var tailoredJSON []byte
	if record.TailoredResume != nil {
		if tailoredJSON, err = json.Marshal(record.TailoredResume); err != nil {
			return nil, fmt.Errorf("failed to marshal tailored resume: %w", err)
		}
	}

	stored := *record
	stored.ID = uuid.NewString()
	err = s.pool.QueryRow(ctx,
		`INSERT INTO job_analyses (id, resume_id, job_description, analysis, tailored_resume)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		stored.ID, stored.ResumeID, stored.JobDescription, analysisJSON, tailoredJSON,
	).Scan(&stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*types.JobAnalysisRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, resume_id, job_description, analysis, tailored_resume, created_at
		 FROM job_analyses WHERE id = $1`, id)
	return scanAnalysis(row)
}

func (s *PostgresStore) ListAnalysesByResume(ctx context.Context, resumeID string) ([]*types.JobAnalysisRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, resume_id, job_description, analysis, tailored_resume, created_at
		 FROM job_analyses WHERE resume_id = $1 ORDER BY created_at, id`, resumeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]*types.JobAnalysisRecord, 0)
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*types.Resume, error) {
	var (
		resume   types.Resume
		dataJSON []byte
	)
	err := row.Scan(&resume.ID, &resume.UserID, &resume.Title, &dataJSON, &resume.CreatedAt, &resume.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan resume: %w", err)
	}
	if err := json.Unmarshal(dataJSON, &resume.Data); err != nil {
		return nil, fmt.Errorf("failed to decode resume data: %w", err)
	}
	resume.CreatedAt = resume.CreatedAt.UTC()
	resume.UpdatedAt = resume.UpdatedAt.UTC()
	return &resume, nil
}

func scanAnalysis(row rowScanner) (*types.JobAnalysisRecord, error) {
	var (
		record       types.JobAnalysisRecord
		analysisJSON []byte
		tailoredJSON []byte
		createdAt    time.Time
	)
	err := row.Scan(&record.ID, &record.ResumeID, &record.JobDescription, &analysisJSON, &tailoredJSON, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}
	if err := json.Unmarshal(analysisJSON, &record.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if len(tailoredJSON) > 0 {
		record.TailoredResume = &types.ResumeData{}
		if err := json.Unmarshal(tailoredJSON, record.TailoredResume); err != nil {
			return nil, fmt.Errorf("failed to decode tailored resume: %w", err)
		}
	}
	record.CreatedAt = createdAt.UTC()
	return &record, nil
}
