// Package schemas provides JSON Schema validation for oracle response payloads.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// AnalysisSchema is the shape check for tailoring analysis payloads.
// Only types are constrained; missing fields are handled by the coercion
// step downstream, and numeric fields tolerate null because the oracle
// sometimes emits it for scores it cannot estimate.
const AnalysisSchema = `{
  "type": "object",
  "properties": {
    "matchedSkills":       {"type": "array", "items": {"type": "string"}},
    "missingSkills":       {"type": "array", "items": {"type": "string"}},
    "keyRequirements":     {"type": "array", "items": {"type": "string"}},
    "originalMatchScore":  {"type": ["number", "null"]},
    "optimizedMatchScore": {"type": ["number", "null"]},
    "suggestions":         {"type": "array", "items": {"type": "string"}},
    "enhancedSummary":     {"type": ["string", "null"]},
    "optimizedBullets":    {"type": "array", "items": {"type": "string"}},
    "improvementAreas":    {"type": "array", "items": {"type": "string"}}
  }
}`

// ATSSchema is the shape check for ATS scan payloads.
const ATSSchema = `{
  "type": "object",
  "properties": {
    "overallScore":     {"type": ["number", "null"]},
    "issues":           {"type": "array", "items": {"type": "string"}},
    "recommendations":  {"type": "array", "items": {"type": "string"}},
    "keywordDensity":   {"type": ["number", "null"]},
    "formatCompliance": {"type": "array", "items": {"type": "string"}}
  }
}`

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// ValidateAnalysisPayload checks a tailoring analysis document against AnalysisSchema.
func ValidateAnalysisPayload(jsonContent string) error {
	return ValidateJSONString(AnalysisSchema, jsonContent)
}

// ValidateATSPayload checks an ATS scan document against ATSSchema.
func ValidateATSPayload(jsonContent string) error {
	return ValidateJSONString(ATSSchema, jsonContent)
}
