package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// templateStyle holds the per-template CSS knobs. All five templates share
// one document structure; only typography and accents differ. Values are
// template.CSS because the contextual escaper would otherwise reject the
// quoted font lists.
type templateStyle struct {
	Accent      template.CSS
	TagBack     template.CSS
	TagColor    template.CSS
	FontFamily  template.CSS
	HeaderAlign template.CSS
	Uppercase   bool
}

var templateStyles = map[string]templateStyle{
	types.TemplateModern: {
		Accent:      "#3B82F6",
		TagBack:     "#EFF6FF",
		TagColor:    "#1D4ED8",
		FontFamily:  "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
		HeaderAlign: "center",
	},
	types.TemplateClassic: {
		Accent:      "#1F2937",
		TagBack:     "#F3F4F6",
		TagColor:    "#1F2937",
		FontFamily:  "Georgia, 'Times New Roman', serif",
		HeaderAlign: "center",
	},
	types.TemplateCreative: {
		Accent:      "#7C3AED",
		TagBack:     "#F5F3FF",
		TagColor:    "#6D28D9",
		FontFamily:  "'Trebuchet MS', Verdana, sans-serif",
		HeaderAlign: "left",
	},
	types.TemplateMinimalist: {
		Accent:      "#6B7280",
		TagBack:     "#F9FAFB",
		TagColor:    "#374151",
		FontFamily:  "'Helvetica Neue', Arial, sans-serif",
		HeaderAlign: "left",
	},
	types.TemplateExecutive: {
		Accent:      "#92400E",
		TagBack:     "#FFFBEB",
		TagColor:    "#92400E",
		FontFamily:  "Garamond, Georgia, serif",
		HeaderAlign: "center",
		Uppercase:   true,
	},
}

const resumeHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: {{.Style.FontFamily}};
  line-height: 1.6;
  color: #333;
  font-size: 11px;
}
.container { max-width: 8.5in; margin: 0 auto; padding: 0.5in; }
h1 { font-size: 24px; font-weight: 700; margin-bottom: 8px; {{if .Style.Uppercase}}text-transform: uppercase; letter-spacing: 2px;{{end}} }
h2 { font-size: 16px; font-weight: 600; margin: 20px 0 10px 0; border-bottom: 2px solid {{.Style.Accent}}; padding-bottom: 4px; {{if .Style.Uppercase}}text-transform: uppercase; letter-spacing: 1px;{{end}} }
h3 { font-size: 14px; font-weight: 600; margin-bottom: 4px; }
.header { text-align: {{.Style.HeaderAlign}}; margin-bottom: 24px; }
.contact { font-size: 10px; color: #666; margin-top: 4px; }
.section { margin-bottom: 20px; }
.experience-item, .education-item, .project-item { margin-bottom: 16px; }
.job-header, .edu-header, .project-header { display: flex; justify-content: space-between; align-items: baseline; }
.company, .institution, .project-name { font-weight: 600; }
.position, .degree { font-style: italic; }
.date { color: #666; font-size: 10px; }
.description { margin-top: 4px; }
.description li { margin-left: 16px; margin-bottom: 2px; }
.skills-list { display: flex; flex-wrap: wrap; gap: 8px; }
.skill-tag {
  background: {{.Style.TagBack}};
  color: {{.Style.TagColor}};
  padding: 4px 8px;
  border-radius: 4px;
  font-size: 10px;
}
@media print {
  body { -webkit-print-color-adjust: exact; }
  .container { padding: 0; }
}
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.Data.PersonalInfo.FullName}}</h1>
    <div class="contact">{{.Data.PersonalInfo.Email}} | {{.Data.PersonalInfo.Phone}} | {{.Data.PersonalInfo.Location}}{{with .Data.PersonalInfo.Website}} | {{.}}{{end}}{{with .Data.PersonalInfo.LinkedIn}} | {{.}}{{end}}{{with .Data.PersonalInfo.GitHub}} | {{.}}{{end}}</div>
  </div>

  {{with .Data.Summary}}
  <div class="section">
    <h2>Professional Summary</h2>
    <p>{{.}}</p>
  </div>
  {{end}}

  {{if .Data.WorkExperience}}
  <div class="section">
    <h2>Work Experience</h2>
    {{range .Data.WorkExperience}}
    <div class="experience-item">
      <div class="job-header">
        <div>
          <div class="company">{{.Company}}</div>
          <div class="position">{{.Position}}</div>
        </div>
        <div class="date">{{.StartDate}} - {{if .Current}}Present{{else}}{{.EndDate}}{{end}}</div>
      </div>
      {{if .Description}}
      <ul class="description">
        {{range .Description}}<li>{{.}}</li>{{end}}
      </ul>
      {{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Data.Education}}
  <div class="section">
    <h2>Education</h2>
    {{range .Data.Education}}
    <div class="education-item">
      <div class="edu-header">
        <div>
          <div class="institution">{{.Institution}}</div>
          <div class="degree">{{.Degree}} in {{.Field}}</div>
        </div>
        <div class="date">{{.StartDate}} - {{.EndDate}}</div>
      </div>
      {{with .GPA}}<div>GPA: {{.}}</div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Data.Skills}}
  <div class="section">
    <h2>Skills</h2>
    <div class="skills-list">
      {{range .Data.Skills}}<span class="skill-tag">{{.}}</span>{{end}}
    </div>
  </div>
  {{end}}

  {{if .Data.Projects}}
  <div class="section">
    <h2>Projects</h2>
    {{range .Data.Projects}}
    <div class="project-item">
      <div class="project-header">
        <h3 class="project-name">{{.Name}}</h3>
        {{if or .URL .GitHub}}
        <div class="date">{{with .URL}}<a href="{{.}}">Demo</a> {{end}}{{with .GitHub}}<a href="{{.}}">Code</a>{{end}}</div>
        {{end}}
      </div>
      <p>{{.Description}}</p>
      {{if .Technologies}}
      <div class="skills-list" style="margin-top: 4px;">
        {{range .Technologies}}<span class="skill-tag">{{.}}</span>{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>`

var resumeTemplate = template.Must(template.New("resume").Parse(resumeHTML))

// RenderHTML renders a resume as a standalone HTML document styled for its
// template id. An unknown or empty template id falls back to modern.
// html/template escapes all user content, so resume text cannot inject
// markup into the document.
func RenderHTML(data *types.ResumeData) (string, error) {
	style, ok := templateStyles[data.Template]
	if !ok {
		style = templateStyles[types.TemplateModern]
	}

	var sb strings.Builder
	err := resumeTemplate.Execute(&sb, struct {
		Style templateStyle
		Data  *types.ResumeData
	}{Style: style, Data: data})
	if err != nil {
		return "", &TemplateError{Message: "failed to execute resume template", Cause: err}
	}
	return sb.String(), nil
}
