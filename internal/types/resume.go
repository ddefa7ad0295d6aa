// Package types defines the resume data model shared across the application.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Template identifiers for rendering. Rendering selection only; tailoring
// logic never inspects the template.
const (
	TemplateModern     = "modern"
	TemplateClassic    = "classic"
	TemplateCreative   = "creative"
	TemplateMinimalist = "minimalist"
	TemplateExecutive  = "executive"
)

// Templates lists the valid template identifiers.
func Templates() []string {
	return []string{TemplateModern, TemplateClassic, TemplateCreative, TemplateMinimalist, TemplateExecutive}
}

// ValidTemplate reports whether id names a known rendering template.
func ValidTemplate(id string) bool {
	for _, t := range Templates() {
		if t == id {
			return true
		}
	}
	return false
}

// PersonalInfo holds contact details for the resume header.
// The three URL fields are optional; everything else is required.
type PersonalInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Location string `json:"location" validate:"required"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
}

// WorkExperienceEntry is a single job with its ordered bullet points.
// ID is assigned at creation time and never regenerated on update.
type WorkExperienceEntry struct {
	ID          string   `json:"id"`
	Company     string   `json:"company" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate,omitempty"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
	Location    string   `json:"location,omitempty"`
}

// EducationEntry is a single education record.
type EducationEntry struct {
	ID           string   `json:"id"`
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	Field        string   `json:"field" validate:"required"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ProjectEntry is a single project record.
type ProjectEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
	GitHub       string   `json:"github,omitempty" validate:"omitempty,url"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// ResumeData is the full structured content of a resume. It is treated as a
// value object: tailoring produces a new ResumeData rather than mutating one.
type ResumeData struct {
	PersonalInfo   PersonalInfo          `json:"personalInfo" validate:"required"`
	Summary        string                `json:"summary"`
	WorkExperience []WorkExperienceEntry `json:"workExperience" validate:"dive"`
	Education      []EducationEntry      `json:"education" validate:"dive"`
	Skills         []string              `json:"skills"`
	Projects       []ProjectEntry        `json:"projects" validate:"dive"`
	Template       string                `json:"template"`
}

// Resume is a stored resume record.
type Resume struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Title     string    `json:"title"`
	Data      ResumeData `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalBullets returns the number of work-experience bullets across all
// entries. The tailoring prompt embeds this count and the reconciler uses it
// as the expected length of the oracle's flat bullet array.
func (r *ResumeData) TotalBullets() int {
	total := 0
	for _, exp := range r.WorkExperience {
		total += len(exp.Description)
	}
	return total
}

// Clone returns a deep copy so stored resumes cannot be mutated through
// slices shared with callers.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.WorkExperience = make([]WorkExperienceEntry, len(r.WorkExperience))
	for i, exp := range r.WorkExperience {
		out.WorkExperience[i] = exp
		out.WorkExperience[i].Description = append([]string(nil), exp.Description...)
	}
	out.Education = make([]EducationEntry, len(r.Education))
	for i, edu := range r.Education {
		out.Education[i] = edu
		out.Education[i].Achievements = append([]string(nil), edu.Achievements...)
	}
	out.Projects = make([]ProjectEntry, len(r.Projects))
	for i, proj := range r.Projects {
		out.Projects[i] = proj
		out.Projects[i].Technologies = append([]string(nil), proj.Technologies...)
	}
	out.Skills = append([]string(nil), r.Skills...)
	return out
}

// MergeSkills appends extra skills to base, skipping duplicates
// (case-insensitive on exact match). Order of base is preserved.
func MergeSkills(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string(nil), base...)
	for _, s := range base {
		seen[normalizeSkill(s)] = true
	}
	for _, s := range extra {
		key := normalizeSkill(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func normalizeSkill(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the resume content against its struct validation tags.
func (r *ResumeData) Validate() error {
	return validate.Struct(r)
}
