package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func testResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			FullName: "Dana Smith",
			Email:    "dana@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
		},
		Summary: "Backend engineer with a focus on data pipelines.",
		Skills:  []string{"Go", "PostgreSQL"},
		WorkExperience: []types.WorkExperienceEntry{
			{
				ID:          "exp_1",
				Company:     "Acme Corp",
				Position:    "Software Engineer",
				StartDate:   "2021-03",
				Current:     true,
				Description: []string{"Built ingestion service", "Cut query latency 40%"},
			},
		},
		Education: []types.EducationEntry{
			{ID: "edu_1", Institution: "State University", Degree: "BSc", Field: "Computer Science", StartDate: "2016", EndDate: "2020"},
		},
		Template: types.TemplateModern,
	}
}

func TestScoreCompatibility(t *testing.T) {
	oracle := &fakeOracle{response: `{
		"overallScore": 72,
		"issues": ["Missing keywords for the target field"],
		"recommendations": ["Add a dedicated skills section header"],
		"keywordDensity": 55,
		"formatCompliance": ["Standard section headings"]
	}`}

	result, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
	require.NoError(t, err)

	assert.Equal(t, 72, result.OverallScore)
	assert.Equal(t, 55, result.KeywordDensity)
	assert.Equal(t, []string{"Missing keywords for the target field"}, result.Issues)
	assert.Len(t, result.Recommendations, 1)
	assert.Len(t, result.FormatCompliance, 1)
}

func TestScoreCompatibilityPromptContent(t *testing.T) {
	oracle := &fakeOracle{response: `{"overallScore": 60, "issues": [], "recommendations": [], "keywordDensity": 50, "formatCompliance": []}`}

	_, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
	require.NoError(t, err)

	for _, want := range []string{"Dana Smith", "Acme Corp", "Built ingestion service", "Go, PostgreSQL", "State University"} {
		assert.Contains(t, oracle.lastPrompt, want)
	}
}

func TestScoreCompatibilityClamping(t *testing.T) {
	cases := []struct {
		name        string
		response    string
		wantOverall int
		wantDensity int
	}{
		{"negative", `{"overallScore": -10, "keywordDensity": 30}`, 0, 30},
		{"over 100", `{"overallScore": 150, "keywordDensity": 101}`, 100, 100},
		{"null", `{"overallScore": null, "keywordDensity": null}`, 0, 0},
		{"missing", `{"issues": []}`, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			oracle := &fakeOracle{response: tc.response}
			result, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
			require.NoError(t, err)
			assert.Equal(t, tc.wantOverall, result.OverallScore)
			assert.Equal(t, tc.wantDensity, result.KeywordDensity)
			assert.NotNil(t, result.Issues)
			assert.NotNil(t, result.Recommendations)
		})
	}
}

func TestScoreCompatibilityOracleDown(t *testing.T) {
	oracle := &fakeOracle{err: fmt.Errorf("%w: connection refused", llm.ErrUnavailable)}

	_, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestScoreCompatibilityMalformed(t *testing.T) {
	oracle := &fakeOracle{response: "the resume looks fine to me"}

	_, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
	require.Error(t, err)

	var mre *llm.MalformedResponseError
	assert.True(t, errors.As(err, &mre))
}

func TestScoreCompatibilitySchemaMismatch(t *testing.T) {
	oracle := &fakeOracle{response: `{"overallScore": "high", "issues": "none"}`}

	_, err := NewScorer(oracle).ScoreCompatibility(context.Background(), testResume())
	require.Error(t, err)

	var mre *llm.MalformedResponseError
	assert.True(t, errors.As(err, &mre))
}

func TestEnhanceForATS(t *testing.T) {
	original := testResume()
	improved := original.Clone()
	improved.Summary = "Backend engineer specializing in high-throughput Go data pipelines and PostgreSQL."
	improved.Skills = append(improved.Skills, "ETL")
	body, err := json.Marshal(improved)
	require.NoError(t, err)

	oracle := &fakeOracle{response: string(body)}
	result, err := NewScorer(oracle).EnhanceForATS(context.Background(), original, &types.ATSAnalysis{
		Issues:          []string{"Summary lacks keywords"},
		Recommendations: []string{"Name concrete technologies in the summary"},
	})
	require.NoError(t, err)

	assert.Equal(t, improved.Summary, result.Summary)
	assert.Contains(t, result.Skills, "ETL")
	assert.Equal(t, original.PersonalInfo, result.PersonalInfo)
	assert.Equal(t, original.Template, result.Template)
	assert.Contains(t, oracle.lastPrompt, "Summary lacks keywords")
	assert.Contains(t, oracle.lastPrompt, "Name concrete technologies")
}

func TestEnhanceForATSFallsBackOnGarbage(t *testing.T) {
	original := testResume()
	oracle := &fakeOracle{response: "I improved your resume, here it is: much better now"}

	result, err := NewScorer(oracle).EnhanceForATS(context.Background(), original, &types.ATSAnalysis{})
	require.NoError(t, err)
	assert.Equal(t, original.Clone(), result)
}

func TestEnhanceForATSKeepsEmptiedSections(t *testing.T) {
	original := testResume()
	oracle := &fakeOracle{response: `{"summary": "Short.", "workExperience": [], "skills": []}`}

	result, err := NewScorer(oracle).EnhanceForATS(context.Background(), original, &types.ATSAnalysis{})
	require.NoError(t, err)

	// The rewritten summary is taken; the emptied sections are not.
	assert.Equal(t, "Short.", result.Summary)
	assert.Equal(t, original.WorkExperience, result.WorkExperience)
	assert.Equal(t, original.Skills, result.Skills)
	assert.Equal(t, original.Education, result.Education)
}

func TestEnhanceForATSKeepsOmittedProjects(t *testing.T) {
	original := testResume()
	original.Projects = []types.ProjectEntry{
		{ID: "proj_1", Name: "Pipeline CLI", Description: "Batch loader for warehouse imports", Technologies: []string{"Go"}},
	}

	// Full response with the projects field missing entirely.
	improved := original.Clone()
	improved.Summary = "Backend engineer, ATS-friendly wording."
	improved.Projects = nil
	body, err := json.Marshal(improved)
	require.NoError(t, err)

	oracle := &fakeOracle{response: string(body)}
	result, err := NewScorer(oracle).EnhanceForATS(context.Background(), original, &types.ATSAnalysis{})
	require.NoError(t, err)

	assert.Equal(t, improved.Summary, result.Summary)
	require.Len(t, result.Projects, 1, "omitted projects must fall back to the original")
	assert.Equal(t, "Pipeline CLI", result.Projects[0].Name)
}

func TestEnhanceForATSOracleDown(t *testing.T) {
	oracle := &fakeOracle{err: fmt.Errorf("%w: timeout", llm.ErrUnavailable)}

	_, err := NewScorer(oracle).EnhanceForATS(context.Background(), testResume(), &types.ATSAnalysis{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestFlattenResumeCurrentRole(t *testing.T) {
	text := flattenResume(testResume())
	assert.Contains(t, text, "2021-03 - Present")
	assert.False(t, strings.Contains(text, "PROJECTS"), "no projects section when resume has none")
}
