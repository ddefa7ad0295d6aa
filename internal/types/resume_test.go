package types

import (
	"reflect"
	"testing"
)

func validResume() ResumeData {
	return ResumeData{
		PersonalInfo: PersonalInfo{
			FullName: "Dana Smith",
			Email:    "dana@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
		},
		Summary: "Backend engineer.",
		WorkExperience: []WorkExperienceEntry{
			{
				ID:          "exp_1",
				Company:     "Acme Corp",
				Position:    "Engineer",
				StartDate:   "2021-03",
				Description: []string{"Built service", "Cut latency"},
			},
			{
				ID:          "exp_2",
				Company:     "Initech",
				Position:    "Developer",
				StartDate:   "2018-06",
				EndDate:     "2021-02",
				Description: []string{"Shipped reports"},
			},
		},
		Education: []EducationEntry{
			{ID: "edu_1", Institution: "State U", Degree: "BS", Field: "CS", StartDate: "2014-09", Achievements: []string{"Dean's list"}},
		},
		Skills: []string{"Go", "SQL"},
		Projects: []ProjectEntry{
			{ID: "proj_1", Name: "CLI tool", Description: "A tool", Technologies: []string{"Go"}},
		},
		Template: TemplateModern,
	}
}

func TestTotalBullets(t *testing.T) {
	r := validResume()
	if got := r.TotalBullets(); got != 3 {
		t.Errorf("TotalBullets() = %d, want 3", got)
	}

	empty := ResumeData{}
	if got := empty.TotalBullets(); got != 0 {
		t.Errorf("TotalBullets() on empty = %d, want 0", got)
	}
}

func TestCloneIsolation(t *testing.T) {
	original := validResume()
	clone := original.Clone()

	if !reflect.DeepEqual(original.Clone(), clone) {
		t.Fatal("clone differs from source")
	}

	// Mutating the clone must not leak into the original.
	clone.WorkExperience[0].Description[0] = "mutated"
	clone.Skills[0] = "mutated"
	clone.Education[0].Achievements[0] = "mutated"
	clone.Projects[0].Technologies[0] = "mutated"

	if original.WorkExperience[0].Description[0] != "Built service" {
		t.Error("clone shares work experience bullets with original")
	}
	if original.Skills[0] != "Go" {
		t.Error("clone shares skills with original")
	}
	if original.Education[0].Achievements[0] != "Dean's list" {
		t.Error("clone shares achievements with original")
	}
	if original.Projects[0].Technologies[0] != "Go" {
		t.Error("clone shares technologies with original")
	}
}

func TestValidTemplate(t *testing.T) {
	for _, id := range Templates() {
		if !ValidTemplate(id) {
			t.Errorf("ValidTemplate(%q) = false", id)
		}
	}
	for _, id := range []string{"", "Modern", "holographic"} {
		if ValidTemplate(id) {
			t.Errorf("ValidTemplate(%q) = true", id)
		}
	}
}

func TestMergeSkills(t *testing.T) {
	tests := []struct {
		name  string
		base  []string
		extra []string
		want  []string
	}{
		{
			name:  "appends new skills",
			base:  []string{"Go", "SQL"},
			extra: []string{"Kubernetes"},
			want:  []string{"Go", "SQL", "Kubernetes"},
		},
		{
			name:  "skips case-insensitive duplicates",
			base:  []string{"Go", "PostgreSQL"},
			extra: []string{"go", "postgresql", "Redis"},
			want:  []string{"Go", "PostgreSQL", "Redis"},
		},
		{
			name:  "ignores whitespace when comparing",
			base:  []string{"Machine Learning"},
			extra: []string{"machine  learning", "NLP"},
			want:  []string{"Machine Learning", "NLP"},
		},
		{
			name:  "drops empty strings",
			base:  []string{"Go"},
			extra: []string{"", "  "},
			want:  []string{"Go"},
		},
		{
			name:  "nil base",
			base:  nil,
			extra: []string{"Go"},
			want:  []string{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeSkills(tt.base, tt.extra)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeSkills() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := validResume()
	if err := valid.Validate(); err != nil {
		t.Errorf("valid resume failed validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ResumeData)
	}{
		{"missing name", func(r *ResumeData) { r.PersonalInfo.FullName = "" }},
		{"bad email", func(r *ResumeData) { r.PersonalInfo.Email = "not-an-email" }},
		{"missing company", func(r *ResumeData) { r.WorkExperience[0].Company = "" }},
		{"missing degree", func(r *ResumeData) { r.Education[0].Degree = "" }},
		{"bad project url", func(r *ResumeData) { r.Projects[0].URL = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResume()
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
