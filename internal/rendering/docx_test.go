package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestRenderDOCX(t *testing.T) {
	out, err := RenderDOCX(sampleResume(types.TemplateClassic))
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("RenderDOCX() returned empty document")
	}

	// Read the document back to make sure the content actually landed.
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("generated docx is unreadable: %v", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	for _, want := range []string{"Dana Smith", "Acme Corp", "Built ingestion service", "State University", "Pipeline Kit"} {
		if !strings.Contains(content, want) {
			t.Errorf("generated docx missing %q", want)
		}
	}
}

func TestRenderDOCXMinimalResume(t *testing.T) {
	resume := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FullName: "Dana Smith",
			Email:    "dana@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
		},
		Template: types.TemplateMinimalist,
	}

	out, err := RenderDOCX(resume)
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("RenderDOCX() returned empty document")
	}
}
