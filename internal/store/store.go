// Package store persists resumes and tailoring analysis records. Three
// backends share one interface: an in-process map, Redis, and PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jonathan/resume-studio/internal/types"
)

// ErrNotFound is returned when a resume or analysis id does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary. Resume updates are full replacements;
// analysis records are append-only and are only ever created or deleted,
// never edited. Deleting a resume also deletes its analysis records.
type Store interface {
	CreateResume(ctx context.Context, title string, data types.ResumeData) (*types.Resume, error)
	GetResume(ctx context.Context, id string) (*types.Resume, error)
	UpdateResume(ctx context.Context, id, title string, data types.ResumeData) (*types.Resume, error)
	DeleteResume(ctx context.Context, id string) error
	ListResumes(ctx context.Context) ([]*types.Resume, error)

	CreateAnalysis(ctx context.Context, record *types.JobAnalysisRecord) (*types.JobAnalysisRecord, error)
	GetAnalysis(ctx context.Context, id string) (*types.JobAnalysisRecord, error)
	ListAnalysesByResume(ctx context.Context, resumeID string) ([]*types.JobAnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id string) error

	Close() error
}
