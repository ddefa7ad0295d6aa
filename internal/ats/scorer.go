// Package ats scores resumes for applicant-tracking-system compatibility
// and applies oracle-suggested ATS improvements.
package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// Scorer runs ATS compatibility scans and enhancement passes against the
// oracle. The rubric lives in the prompt; the Go side only sanitizes,
// shape-checks and clamps what comes back.
type Scorer struct {
	client llm.Client
}

// NewScorer creates a Scorer backed by the given oracle client.
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{client: client}
}

// atsPayload is the raw, untrusted shape of an ATS scan response. Scores
// are pointers so missing and null are distinguishable from zero.
type atsPayload struct {
	OverallScore     *float64 `json:"overallScore"`
	Issues           []string `json:"issues"`
	Recommendations  []string `json:"recommendations"`
	KeywordDensity   *float64 `json:"keywordDensity"`
	FormatCompliance []string `json:"formatCompliance"`
}

// ScoreCompatibility scans a resume for ATS compatibility. Scores are
// clamped to [0,100]; missing or null scores coerce to 0. The prompt asks
// for realistic scoring but nothing enforces a band here: a conforming
// response of 3 or 97 passes through clamped only.
func (s *Scorer) ScoreCompatibility(ctx context.Context, resume *types.ResumeData) (*types.ATSAnalysis, error) {
	prompt := prompts.Format(prompts.MustGet("ats.json", "scan"), map[string]string{
		"ResumeText": flattenResume(resume),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("ats scan failed: %w", err)
	}

	doc, ok := llm.SanitizeJSON(raw)
	if !ok {
		return nil, &llm.MalformedResponseError{Reason: "unparseable ats scan response"}
	}
	if err := schemas.ValidateATSPayload(doc); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, &llm.MalformedResponseError{Reason: "ats scan response shape mismatch", Cause: err}
		}
		return nil, fmt.Errorf("ats scan validation: %w", err)
	}

	var payload atsPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, &llm.MalformedResponseError{Reason: "ats scan response shape mismatch", Cause: err}
	}

	return &types.ATSAnalysis{
		OverallScore:     clampScore(payload.OverallScore),
		Issues:           orEmpty(payload.Issues),
		Recommendations:  orEmpty(payload.Recommendations),
		KeywordDensity:   clampScore(payload.KeywordDensity),
		FormatCompliance: orEmpty(payload.FormatCompliance),
	}, nil
}

// EnhanceForATS asks the oracle to rework the resume against a prior scan's
// issues and recommendations. Content preservation is per field: any top-level
// field the response left empty falls back to the original, so a partial
// answer can never delete a section from a stored resume. An entirely
// unparseable response falls back to the original wholesale rather than
// erroring. Transport failures still surface as errors.
func (s *Scorer) EnhanceForATS(ctx context.Context, resume *types.ResumeData, analysis *types.ATSAnalysis) (types.ResumeData, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("encoding resume: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("ats.json", "enhance"), map[string]string{
		"ResumeJSON":      string(resumeJSON),
		"Issues":          bulletList(analysis.Issues),
		"Recommendations": bulletList(analysis.Recommendations),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("ats enhancement failed: %w", err)
	}

	doc, ok := llm.SanitizeJSON(raw)
	if !ok {
		return resume.Clone(), nil
	}

	var enhanced types.ResumeData
	if err := json.Unmarshal([]byte(doc), &enhanced); err != nil {
		return resume.Clone(), nil
	}

	// Overlay non-empty response fields onto a copy of the original. A
	// section the oracle omitted or emptied keeps its original content.
	// PersonalInfo and Template never come from the oracle regardless of
	// what it returned.
	out := resume.Clone()
	if enhanced.Summary != "" {
		out.Summary = enhanced.Summary
	}
	if len(enhanced.WorkExperience) > 0 {
		out.WorkExperience = enhanced.WorkExperience
	}
	if len(enhanced.Skills) > 0 {
		out.Skills = enhanced.Skills
	}
	if len(enhanced.Education) > 0 {
		out.Education = enhanced.Education
	}
	if len(enhanced.Projects) > 0 {
		out.Projects = enhanced.Projects
	}
	return out, nil
}

// flattenResume renders a resume as the plain text an ATS parser would see.
func flattenResume(r *types.ResumeData) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n%s | %s | %s\n", r.PersonalInfo.FullName, r.PersonalInfo.Email, r.PersonalInfo.Phone, r.PersonalInfo.Location)
	if r.Summary != "" {
		fmt.Fprintf(&sb, "\nSUMMARY\n%s\n", r.Summary)
	}
	if len(r.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSKILLS\n%s\n", strings.Join(r.Skills, ", "))
	}
	if len(r.WorkExperience) > 0 {
		sb.WriteString("\nEXPERIENCE\n")
		for _, exp := range r.WorkExperience {
			end := exp.EndDate
			if exp.Current {
				end = "Present"
			}
			fmt.Fprintf(&sb, "%s, %s (%s - %s)\n", exp.Position, exp.Company, exp.StartDate, end)
			for _, bullet := range exp.Description {
				fmt.Fprintf(&sb, "- %s\n", bullet)
			}
		}
	}
	if len(r.Education) > 0 {
		sb.WriteString("\nEDUCATION\n")
		for _, edu := range r.Education {
			fmt.Fprintf(&sb, "%s in %s, %s (%s - %s)\n", edu.Degree, edu.Field, edu.Institution, edu.StartDate, edu.EndDate)
		}
	}
	if len(r.Projects) > 0 {
		sb.WriteString("\nPROJECTS\n")
		for _, p := range r.Projects {
			fmt.Fprintf(&sb, "%s: %s", p.Name, p.Description)
			if len(p.Technologies) > 0 {
				fmt.Fprintf(&sb, " (%s)", strings.Join(p.Technologies, ", "))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(item)
	}
	return sb.String()
}

func clampScore(score *float64) int {
	if score == nil {
		return 0
	}
	v := int(*score)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
