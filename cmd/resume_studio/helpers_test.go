package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestMimeForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"resume.txt", "text/plain", false},
		{"Resume.PDF", "application/pdf", false},
		{"cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"old.doc", "application/msword", false},
		{"photo.png", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := mimeForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("mimeForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("mimeForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadResumeJSON(t *testing.T) {
	resume := types.ResumeData{
		PersonalInfo: types.PersonalInfo{FullName: "Dana Smith", Email: "dana@example.com"},
		Skills:       []string{"Go"},
	}
	raw, err := json.Marshal(resume)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "resume.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	// JSON resumes bypass the parsing oracle, so a nil client is fine.
	got, err := loadResume(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("loadResume: %v", err)
	}
	if got.PersonalInfo.FullName != "Dana Smith" {
		t.Errorf("FullName = %q", got.PersonalInfo.FullName)
	}
	if got.Template != types.TemplateModern {
		t.Errorf("Template = %q, want default %q", got.Template, types.TemplateModern)
	}
}

func TestLoadResumeBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadResume(context.Background(), nil, path); err == nil {
		t.Error("expected error for malformed resume JSON")
	}
}

func TestLoadJobDescriptionFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	content := "Senior   Backend Engineer\n\n\n\nWe need Go expertise."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadJobDescription(context.Background(), path, "")
	if err != nil {
		t.Fatalf("loadJobDescription: %v", err)
	}
	if !strings.Contains(got, "Senior Backend Engineer") {
		t.Errorf("whitespace not normalized: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("excess blank lines survived: %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if decoded["a"] != 1 {
		t.Errorf("decoded = %v", decoded)
	}
}
