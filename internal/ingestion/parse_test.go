package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

type fakeOracle struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeOracle) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeOracle) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return llm.CleanJSONBlock(f.response), nil
}

func (f *fakeOracle) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (f *fakeOracle) Close() error                       { return nil }

const resumeText = "Dana Smith\ndana@example.com | 555-0100 | Portland, OR\n\nBackend engineer with six years of Go experience building data pipelines."

func TestParseResume(t *testing.T) {
	oracle := &fakeOracle{response: `{
		"personalInfo": {"fullName": "Dana Smith", "email": "dana@example.com", "phone": "555-0100", "location": "Portland, OR"},
		"summary": "Backend engineer.",
		"skills": ["Go", "PostgreSQL"],
		"workExperience": [{"company": "Acme Corp", "position": "Engineer", "startDate": "2021-03", "current": true, "description": ["Built pipelines"]}],
		"education": [{"institution": "State University", "degree": "BSc", "field": "CS", "startDate": "2016", "endDate": "2020"}]
	}`}

	parsed, err := ParseResume(context.Background(), oracle, resumeText)
	if err != nil {
		t.Fatalf("ParseResume() error = %v", err)
	}

	if parsed.PersonalInfo.FullName != "Dana Smith" {
		t.Errorf("FullName = %q", parsed.PersonalInfo.FullName)
	}
	if len(parsed.WorkExperience) != 1 || parsed.WorkExperience[0].ID == "" {
		t.Errorf("work experience entry missing assigned id: %+v", parsed.WorkExperience)
	}
	if len(parsed.Education) != 1 || parsed.Education[0].ID == "" {
		t.Errorf("education entry missing assigned id: %+v", parsed.Education)
	}
	if parsed.Template != types.TemplateModern {
		t.Errorf("Template = %q, want default %q", parsed.Template, types.TemplateModern)
	}
	if !strings.Contains(oracle.lastPrompt, "Dana Smith") {
		t.Error("prompt missing resume content")
	}
}

func TestParseResumePartial(t *testing.T) {
	oracle := &fakeOracle{response: `{"summary": "Engineer with an unusual resume layout."}`}

	parsed, err := ParseResume(context.Background(), oracle, resumeText)
	if err != nil {
		t.Fatalf("ParseResume() error = %v", err)
	}
	if parsed.Summary == "" {
		t.Error("summary lost")
	}
	if parsed.Skills == nil {
		t.Error("skills should default to empty, not nil")
	}
}

func TestParseResumeTooShort(t *testing.T) {
	_, err := ParseResume(context.Background(), &fakeOracle{}, "too short")
	if !errors.Is(err, ErrContentTooShort) {
		t.Errorf("ParseResume() error = %v, want ErrContentTooShort", err)
	}
}

func TestParseResumeMalformed(t *testing.T) {
	oracle := &fakeOracle{response: "I could not parse this resume, sorry"}

	_, err := ParseResume(context.Background(), oracle, resumeText)
	var mre *llm.MalformedResponseError
	if !errors.As(err, &mre) {
		t.Errorf("ParseResume() error = %v, want MalformedResponseError", err)
	}
}
