package tailoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/types"
)

// MinJobDescriptionLength is the caller-enforced minimum for a job
// description. A UX guard against pasting a job title instead of a posting,
// not a correctness requirement.
const MinJobDescriptionLength = 50

// BuildAnalysisPrompt constructs the single oracle prompt for a tailoring
// run. It embeds the job description verbatim, the flattened work history
// with bullets numbered per job, the total bullet count, and the
// content-preservation constraints.
func BuildAnalysisPrompt(jobDescription string, resume *types.ResumeData) string {
	template := prompts.MustGet("tailoring.json", "analyze_job")

	return prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"Name":           resume.PersonalInfo.FullName,
		"Summary":        resume.Summary,
		"Skills":         strings.Join(resume.Skills, ", "),
		"Experience":     flattenExperience(resume.WorkExperience),
		"TotalBullets":   strconv.Itoa(resume.TotalBullets()),
	})
}

// flattenExperience renders the work history with bullets numbered per job,
// so the oracle can see each job's bullet-count boundary.
func flattenExperience(entries []types.WorkExperienceEntry) string {
	var sb strings.Builder
	for i, exp := range entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "JOB %d - %s at %s (%d bullet points):", i+1, exp.Position, exp.Company, len(exp.Description))
		for j, bullet := range exp.Description {
			fmt.Fprintf(&sb, "\n%d. %s", j+1, bullet)
		}
	}
	return sb.String()
}
