package types

import "time"

// JobAnalysis is the validated, coerced result of a tailoring run.
// OptimizedExperience is the reconciled work history: every entry keeps its
// original company, position, dates and bullet count.
type JobAnalysis struct {
	MatchedSkills       []string              `json:"matchedSkills"`
	MissingSkills       []string              `json:"missingSkills"`
	KeyRequirements     []string              `json:"keyRequirements"`
	OriginalMatchScore  int                   `json:"originalMatchScore"`
	OptimizedMatchScore int                   `json:"optimizedMatchScore"`
	Suggestions         []string              `json:"suggestions"`
	EnhancedSummary     string                `json:"enhancedSummary,omitempty"`
	OptimizedExperience []WorkExperienceEntry `json:"optimizedExperience,omitempty"`
	ImprovementAreas    []string              `json:"improvementAreas,omitempty"`
}

// JobAnalysisRecord is an append-only record of one tailoring request.
// Records are superseded by creating new ones, never edited.
type JobAnalysisRecord struct {
	ID             string      `json:"id"`
	ResumeID       string      `json:"resumeId"`
	JobDescription string      `json:"jobDescription"`
	Analysis       JobAnalysis `json:"analysis"`
	TailoredResume *ResumeData `json:"tailoredResume,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// ATSAnalysis is the coerced result of an ATS compatibility scan.
// Scores are clamped to [0,100].
type ATSAnalysis struct {
	OverallScore     int      `json:"overallScore"`
	Issues           []string `json:"issues"`
	Recommendations  []string `json:"recommendations"`
	KeywordDensity   int      `json:"keywordDensity"`
	FormatCompliance []string `json:"formatCompliance"`
}
