package ingestion

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractTextPlain(t *testing.T) {
	content := "Dana Smith\ndana@example.com\n\nBackend engineer with six years of Go experience."

	got, err := ExtractText("text/plain", []byte(content))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(got, "Dana Smith") {
		t.Errorf("extracted text missing name: %q", got)
	}
}

func TestExtractTextUnsupportedType(t *testing.T) {
	_, err := ExtractText("image/png", []byte("not a resume"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("ExtractText() error = %v, want ErrUnsupportedType", err)
	}
}

func TestExtractTextTooLarge(t *testing.T) {
	data := make([]byte, MaxUploadBytes+1)
	_, err := ExtractText("text/plain", data)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("ExtractText() error = %v, want ErrFileTooLarge", err)
	}
}

func TestExtractTextTooShort(t *testing.T) {
	_, err := ExtractText("text/plain", []byte("too short"))
	if !errors.Is(err, ErrContentTooShort) {
		t.Errorf("ExtractText() error = %v, want ErrContentTooShort", err)
	}
}

func TestStripDocumentXML(t *testing.T) {
	input := `<w:p><w:r><w:t>Dana Smith</w:t></w:r></w:p><w:p><w:r><w:t>Engineer &amp; Architect</w:t></w:r></w:p>`
	got := stripDocumentXML(input)

	if !strings.Contains(got, "Dana Smith\n") {
		t.Errorf("paragraph break not preserved: %q", got)
	}
	if !strings.Contains(got, "Engineer & Architect") {
		t.Errorf("entity not decoded: %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("tags left behind: %q", got)
	}
}
