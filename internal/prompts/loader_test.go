package prompts

import (
	"strings"
	"testing"
)

func TestGet_KnownPrompts(t *testing.T) {
	tests := []struct {
		filename string
		key      string
		contains string
	}{
		{"tailoring.json", "analyze_job", "TOTAL BULLET POINTS TO OPTIMIZE: {{.TotalBullets}}"},
		{"ats.json", "scan", "between 45 and 85"},
		{"ats.json", "enhance", "never remove existing content"},
		{"parsing.json", "parse_resume", "RESUME CONTENT:"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			if err != nil {
				t.Fatalf("Get(%q, %q) error: %v", tt.filename, tt.key, err)
			}
			if !strings.Contains(prompt, tt.contains) {
				t.Errorf("prompt missing expected fragment %q", tt.contains)
			}
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	if _, err := Get("tailoring.json", "nonexistent"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := Get("nonexistent.json", "whatever"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, you have {{.Count}} bullets"
	result := Format(template, map[string]string{
		"Name":  "Jane",
		"Count": "7",
	})
	expected := "Hello Jane, you have 7 bullets"
	if result != expected {
		t.Errorf("Format() = %q, want %q", result, expected)
	}
}

func TestFormat_MissingPlaceholderLeftIntact(t *testing.T) {
	template := "Keep {{.Unknown}} as-is"
	result := Format(template, map[string]string{"Other": "x"})
	if result != template {
		t.Errorf("Format() = %q, want %q", result, template)
	}
}
