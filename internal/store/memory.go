package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/types"
)

// MemoryStore keeps everything in process memory. The default backend when
// no STORAGE_BACKEND is configured, and the one the server tests run on.
type MemoryStore struct {
	mu       sync.RWMutex
	resumes  map[string]*types.Resume
	analyses map[string]*types.JobAnalysisRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes:  make(map[string]*types.Resume),
		analyses: make(map[string]*types.JobAnalysisRecord),
	}
}

func (s *MemoryStore) CreateResume(ctx context.Context, title string, data types.ResumeData) (*types.Resume, error) {
	now := time.Now().UTC()
	resume := &types.Resume{
		ID:        uuid.NewString(),
		Title:     title,
		Data:      data.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.resumes[resume.ID] = resume
	s.mu.Unlock()

	return copyResume(resume), nil
}

func (s *MemoryStore) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	s.mu.RLock()
	resume, ok := s.resumes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return copyResume(resume), nil
}

func (s *MemoryStore) UpdateResume(ctx context.Context, id, title string, data types.ResumeData) (*types.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.resumes[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := &types.Resume{
		ID:        existing.ID,
		UserID:    existing.UserID,
		Title:     title,
		Data:      data.Clone(),
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	s.resumes[id] = updated

	return copyResume(updated), nil
}

func (s *MemoryStore) DeleteResume(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resumes[id]; !ok {
		return ErrNotFound
	}
	delete(s.resumes, id)
	for analysisID, record := range s.analyses {
		if record.ResumeID == id {
			delete(s.analyses, analysisID)
		}
	}
	return nil
}

func (s *MemoryStore) ListResumes(ctx context.Context) ([]*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Resume, 0, len(s.resumes))
	for _, resume := range s.resumes {
		out = append(out, copyResume(resume))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateAnalysis(ctx context.Context, record *types.JobAnalysisRecord) (*types.JobAnalysisRecord, error) {
	stored := *record
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.analyses[stored.ID] = &stored
	s.mu.Unlock()

	out := stored
	return &out, nil
}

func (s *MemoryStore) GetAnalysis(ctx context.Context, id string) (*types.JobAnalysisRecord, error) {
	s.mu.RLock()
	record, ok := s.analyses[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := *record
	return &out, nil
}

func (s *MemoryStore) ListAnalysesByResume(ctx context.Context, resumeID string) ([]*types.JobAnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.JobAnalysisRecord, 0)
	for _, record := range s.analyses {
		if record.ResumeID == resumeID {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) DeleteAnalysis(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	delete(s.analyses, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// copyResume shields the stored record from mutation through returned
// pointers and shared slices.
func copyResume(r *types.Resume) *types.Resume {
	out := *r
	out.Data = r.Data.Clone()
	return &out
}
