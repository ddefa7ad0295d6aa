// Package tailoring reconciles oracle-suggested resume enhancements back
// onto the original resume structure without losing content.
package tailoring

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// Reconciler runs job-description tailoring against the oracle and enforces
// the zero-content-loss invariant on the result.
type Reconciler struct {
	client llm.Client
}

// NewReconciler creates a Reconciler backed by the given oracle client.
func NewReconciler(client llm.Client) *Reconciler {
	return &Reconciler{client: client}
}

// AnalyzeJobDescription sends resume and job description to the oracle and
// returns a JobAnalysis whose OptimizedExperience preserves every original
// entry's bullet count and structural metadata.
//
// Transport failures surface as llm.ErrUnavailable; responses unparseable
// after the repair pass surface as *MalformedResponseError. A per-entry
// bullet-count mismatch is not an error: that entry silently keeps its
// original bullets, so a bad response degrades per job rather than failing
// the whole request.
func (r *Reconciler) AnalyzeJobDescription(ctx context.Context, jobDescription string, resume *types.ResumeData) (*types.JobAnalysis, error) {
	prompt := BuildAnalysisPrompt(jobDescription, resume)

	raw, err := r.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("tailoring analysis failed: %w", err)
	}

	payload, status, err := DecodeAnalysis(raw)
	switch status {
	case DecodeParseFailed:
		return nil, &llm.MalformedResponseError{Reason: "unparseable analysis response", Cause: err}
	case DecodeSchemaMismatch:
		return nil, &llm.MalformedResponseError{Reason: "analysis response shape mismatch", Cause: err}
	}

	analysis := &types.JobAnalysis{
		MatchedSkills:       orEmpty(payload.MatchedSkills),
		MissingSkills:       orEmpty(payload.MissingSkills),
		KeyRequirements:     orEmpty(payload.KeyRequirements),
		OriginalMatchScore:  clampScore(payload.OriginalMatchScore),
		OptimizedMatchScore: clampScore(payload.OptimizedMatchScore),
		Suggestions:         orEmpty(payload.Suggestions),
		EnhancedSummary:     payload.EnhancedSummary,
		OptimizedExperience: redistributeBullets(resume.WorkExperience, payload.OptimizedBullets),
		ImprovementAreas:    orEmpty(payload.ImprovementAreas),
	}
	if analysis.EnhancedSummary == "" {
		analysis.EnhancedSummary = resume.Summary
	}

	return analysis, nil
}

// TailoredResume builds the tailored resume from an analysis: the original
// resume with the enhanced summary and reconciled work history swapped in.
// Everything else is copied from the original.
func TailoredResume(resume *types.ResumeData, analysis *types.JobAnalysis) types.ResumeData {
	tailored := resume.Clone()
	if analysis.EnhancedSummary != "" {
		tailored.Summary = analysis.EnhancedSummary
	}
	if analysis.OptimizedExperience != nil {
		tailored.WorkExperience = analysis.OptimizedExperience
	}
	return tailored
}

// redistributeBullets walks the original entries in order, carving the
// oracle's flat bullet array back into per-job slices by running offset.
// An entry adopts its slice only when the slice length equals its original
// bullet count; otherwise the entry keeps its original bullets unchanged.
// This is the enforcement point for the zero-content-loss invariant.
// Structural metadata (company, position, dates, current, location, id) is
// always copied from the original entry, never taken from the oracle.
func redistributeBullets(original []types.WorkExperienceEntry, optimized []string) []types.WorkExperienceEntry {
	reconciled := make([]types.WorkExperienceEntry, len(original))
	bulletsProcessed := 0

	for i, exp := range original {
		reconciled[i] = exp
		n := len(exp.Description)

		// The slice for this entry is adopted only when it is complete;
		// a short or absent array means this entry keeps its original
		// bullets unchanged.
		end := bulletsProcessed + n
		if end <= len(optimized) {
			reconciled[i].Description = append([]string(nil), optimized[bulletsProcessed:end]...)
		} else {
			reconciled[i].Description = append([]string(nil), exp.Description...)
		}

		bulletsProcessed = end
	}

	return reconciled
}
