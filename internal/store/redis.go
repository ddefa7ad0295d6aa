package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	resumeKeyPrefix   = "resume:"
	analysisKeyPrefix = "analysis:"
	resumeIndexKey    = "resumes"
	analysisIndexFmt  = "resume_analyses:%s"
)

// RedisStore persists records as JSON values in Redis. Resume ids live in
// one set, each resume's analysis ids in a per-resume set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) CreateResume(ctx context.Context, title string, data types.ResumeData) (*types.Resume, error) {
	now := time.Now().UTC()
	resume := &types.Resume{
		ID:        uuid.NewString(),
		Title:     title,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.putResume(ctx, resume); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, resumeIndexKey, resume.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index resume: %w", err)
	}
	return resume, nil
}

func (s *RedisStore) GetResume(ctx context.Context, id string) (*types.Resume, error) {
	raw, err := s.client.Get(ctx, resumeKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resume %s: %w", id, err)
	}

	var resume types.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", id, err)
	}
	return &resume, nil
}

func (s *RedisStore) UpdateResume(ctx context.Context, id, title string, data types.ResumeData) (*types.Resume, error) {
	existing, err := s.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Data = data
	existing.UpdatedAt = time.Now().UTC()
	if err := s.putResume(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *RedisStore) DeleteResume(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, resumeKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", id, err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.client.SRem(ctx, resumeIndexKey, id)

	indexKey := fmt.Sprintf(analysisIndexFmt, id)
	analysisIDs, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list analyses for resume %s: %w", id, err)
	}
	for _, analysisID := range analysisIDs {
		s.client.Del(ctx, analysisKeyPrefix+analysisID)
	}
	s.client.Del(ctx, indexKey)
	return nil
}

func (s *RedisStore) ListResumes(ctx context.Context) ([]*types.Resume, error) {
	ids, err := s.client.SMembers(ctx, resumeIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	out := make([]*types.Resume, 0, len(ids))
	for _, id := range ids {
		resume, err := s.GetResume(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry outlived its value; skip.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RedisStore) CreateAnalysis(ctx context.Context, record *types.JobAnalysisRecord) (*types.JobAnalysisRecord, error) {
	stored := *record
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	raw, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := s.client.Set(ctx, analysisKeyPrefix+stored.ID, raw, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	indexKey := fmt.Sprintf(analysisIndexFmt, stored.ResumeID)
	if err := s.client.SAdd(ctx, indexKey, stored.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index analysis: %w", err)
	}
	return &stored, nil
}

func (s *RedisStore) GetAnalysis(ctx context.Context, id string) (*types.JobAnalysisRecord, error) {
	raw, err := s.client.Get(ctx, analysisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var record types.JobAnalysisRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &record, nil
}

func (s *RedisStore) ListAnalysesByResume(ctx context.Context, resumeID string) ([]*types.JobAnalysisRecord, error) {
	ids, err := s.client.SMembers(ctx, fmt.Sprintf(analysisIndexFmt, resumeID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	out := make([]*types.JobAnalysisRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetAnalysis(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *RedisStore) DeleteAnalysis(ctx context.Context, id string) error {
	record, err := s.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, analysisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	s.client.SRem(ctx, fmt.Sprintf(analysisIndexFmt, record.ResumeID), id)
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) putResume(ctx context.Context, resume *types.Resume) error {
	raw, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}
	if err := s.client.Set(ctx, resumeKeyPrefix+resume.ID, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store resume: %w", err)
	}
	return nil
}
