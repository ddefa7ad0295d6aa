package tailoring

import (
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/schemas"
)

// DecodeStatus tags the outcome of decoding an oracle response.
type DecodeStatus int

const (
	// DecodeOK means the response parsed and matched the expected shape.
	DecodeOK DecodeStatus = iota
	// DecodeParseFailed means the text was not JSON even after repair.
	DecodeParseFailed
	// DecodeSchemaMismatch means the JSON parsed but had wrong field types.
	DecodeSchemaMismatch
)

// AnalysisPayload is the raw, untrusted shape of the oracle's tailoring
// response. Scores are pointers so missing and null are distinguishable
// from zero; every field may be absent.
type AnalysisPayload struct {
	MatchedSkills       []string `json:"matchedSkills"`
	MissingSkills       []string `json:"missingSkills"`
	KeyRequirements     []string `json:"keyRequirements"`
	OriginalMatchScore  *float64 `json:"originalMatchScore"`
	OptimizedMatchScore *float64 `json:"optimizedMatchScore"`
	Suggestions         []string `json:"suggestions"`
	EnhancedSummary     string   `json:"enhancedSummary"`
	OptimizedBullets    []string `json:"optimizedBullets"`
	ImprovementAreas    []string `json:"improvementAreas"`
}

// DecodeAnalysis sanitizes and parses a raw oracle response. Sanitization
// strips markdown fences and control characters; if parsing still fails,
// one repair pass truncates the text at the last closing brace and retries.
// The parsed document is then shape-checked before the struct decode.
func DecodeAnalysis(raw string) (*AnalysisPayload, DecodeStatus, error) {
	doc, ok := llm.SanitizeJSON(raw)
	if !ok {
		return nil, DecodeParseFailed, errors.New("response is not valid JSON after repair")
	}

	if err := schemas.ValidateAnalysisPayload(doc); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, DecodeSchemaMismatch, err
		}
		return nil, DecodeParseFailed, err
	}

	var payload AnalysisPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		// Schema passed but the struct decode disagreed; treat as mismatch.
		return nil, DecodeSchemaMismatch, err
	}
	return &payload, DecodeOK, nil
}

// clampScore bounds a possibly-missing oracle score to [0,100].
// Missing (nil) defaults to 0.
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

// orEmpty normalizes a nil slice to an empty one so JSON responses carry
// [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
