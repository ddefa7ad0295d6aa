package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// mimeForPath maps a resume file extension to the MIME type the extractor
// expects. JSON files skip extraction entirely.
func mimeForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "text/plain", nil
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	case ".doc":
		return "application/msword", nil
	default:
		return "", fmt.Errorf("unsupported resume file type %q (expected .txt, .pdf, .docx or .json)", filepath.Ext(path))
	}
}

// loadResume reads a resume from disk. JSON files are decoded directly as
// structured resume data; anything else goes through text extraction and
// the parsing oracle.
func loadResume(ctx context.Context, client llm.Client, path string) (*types.ResumeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var resume types.ResumeData
		if err := json.Unmarshal(data, &resume); err != nil {
			return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
		}
		if resume.Template == "" {
			resume.Template = types.TemplateModern
		}
		return &resume, nil
	}

	mimeType, err := mimeForPath(path)
	if err != nil {
		return nil, err
	}

	content, err := ingestion.ExtractText(mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	return ingestion.ParseResume(ctx, client, content)
}

// loadJobDescription returns the job posting text from a local file or by
// fetching and stripping a posting URL. Exactly one of jobPath/jobURL is set.
func loadJobDescription(ctx context.Context, jobPath, jobURL string) (string, error) {
	if jobPath != "" {
		data, err := os.ReadFile(jobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return ingestion.CleanText(string(data)), nil
	}

	text, err := ingestion.FetchJobPosting(ctx, jobURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return text, nil
}

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
