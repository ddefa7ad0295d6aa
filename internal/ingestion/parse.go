package ingestion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/types"
)

// ParseResume asks the oracle to structure free resume text. The result is
// a partial ResumeData: whatever the oracle could not find stays empty for
// the user to fill in. Entry ids are assigned here, never by the oracle.
func ParseResume(ctx context.Context, client llm.Client, content string) (*types.ResumeData, error) {
	if len(content) < MinContentLength {
		return nil, ErrContentTooShort
	}

	prompt := prompts.Format(prompts.MustGet("parsing.json", "parse_resume"), map[string]string{
		"Content": content,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	doc, ok := llm.SanitizeJSON(raw)
	if !ok {
		return nil, &llm.MalformedResponseError{Reason: "unparseable resume parse response"}
	}

	var parsed types.ResumeData
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, &llm.MalformedResponseError{Reason: "resume parse response shape mismatch", Cause: err}
	}

	assignIDs(&parsed)
	if parsed.Skills == nil {
		parsed.Skills = []string{}
	}
	if parsed.Template == "" {
		parsed.Template = types.TemplateModern
	}
	return &parsed, nil
}

func assignIDs(data *types.ResumeData) {
	for i := range data.WorkExperience {
		if data.WorkExperience[i].ID == "" {
			data.WorkExperience[i].ID = uuid.NewString()
		}
	}
	for i := range data.Education {
		if data.Education[i].ID == "" {
			data.Education[i].ID = uuid.NewString()
		}
	}
	for i := range data.Projects {
		if data.Projects[i].ID == "" {
			data.Projects[i].ID = uuid.NewString()
		}
	}
}
