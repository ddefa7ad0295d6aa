package rendering

import (
	"bytes"
	"strings"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/jonathan/resume-studio/internal/types"
)

// RenderDOCX renders a resume as a Word document. Layout mirrors the HTML
// templates: centered header, bordered section headings, bulleted
// experience. Template ids only affect colors in HTML/PDF; DOCX output is
// monochrome for maximum ATS friendliness.
func RenderDOCX(data *types.ResumeData) ([]byte, error) {
	doc := document.New()

	addDocxHeader(doc, &data.PersonalInfo)

	if data.Summary != "" {
		addDocxHeading(doc, "Professional Summary")
		addDocxText(doc, data.Summary)
	}

	if len(data.WorkExperience) > 0 {
		addDocxHeading(doc, "Work Experience")
		for _, exp := range data.WorkExperience {
			end := exp.EndDate
			if exp.Current {
				end = "Present"
			}

			para := doc.AddParagraph()
			company := para.AddRun()
			company.Properties().SetBold(true)
			company.AddText(exp.Company)
			date := para.AddRun()
			date.Properties().SetSize(9 * measurement.Point)
			date.Properties().SetColor(color.Gray)
			date.AddText("   " + exp.StartDate + " - " + end)

			position := doc.AddParagraph().AddRun()
			position.Properties().SetItalic(true)
			position.AddText(exp.Position)

			for _, bullet := range exp.Description {
				addDocxBullet(doc, bullet)
			}
		}
	}

	if len(data.Education) > 0 {
		addDocxHeading(doc, "Education")
		for _, edu := range data.Education {
			para := doc.AddParagraph()
			inst := para.AddRun()
			inst.Properties().SetBold(true)
			inst.AddText(edu.Institution)
			date := para.AddRun()
			date.Properties().SetSize(9 * measurement.Point)
			date.Properties().SetColor(color.Gray)
			date.AddText("   " + edu.StartDate + " - " + edu.EndDate)

			degree := doc.AddParagraph().AddRun()
			degree.Properties().SetItalic(true)
			degree.AddText(edu.Degree + " in " + edu.Field)

			if edu.GPA != "" {
				addDocxText(doc, "GPA: "+edu.GPA)
			}
		}
	}

	if len(data.Skills) > 0 {
		addDocxHeading(doc, "Skills")
		addDocxText(doc, strings.Join(data.Skills, ", "))
	}

	if len(data.Projects) > 0 {
		addDocxHeading(doc, "Projects")
		for _, project := range data.Projects {
			name := doc.AddParagraph().AddRun()
			name.Properties().SetBold(true)
			name.AddText(project.Name)

			addDocxText(doc, project.Description)
			if len(project.Technologies) > 0 {
				tech := doc.AddParagraph().AddRun()
				tech.Properties().SetItalic(true)
				tech.Properties().SetSize(9 * measurement.Point)
				tech.AddText("Technologies: " + strings.Join(project.Technologies, ", "))
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, &RenderError{Message: "docx generation failed", Cause: err}
	}
	return buf.Bytes(), nil
}

func addDocxHeader(doc *document.Document, info *types.PersonalInfo) {
	namePara := doc.AddParagraph()
	namePara.Properties().SetAlignment(wml.ST_JcCenter)
	name := namePara.AddRun()
	name.Properties().SetBold(true)
	name.Properties().SetSize(18 * measurement.Point)
	name.AddText(info.FullName)

	contactPara := doc.AddParagraph()
	contactPara.Properties().SetAlignment(wml.ST_JcCenter)
	contact := contactPara.AddRun()
	contact.Properties().SetSize(9 * measurement.Point)
	contact.Properties().SetColor(color.Gray)

	line := info.Email + " | " + info.Phone + " | " + info.Location
	for _, extra := range []string{info.Website, info.LinkedIn, info.GitHub} {
		if extra != "" {
			line += " | " + extra
		}
	}
	contact.AddText(line)
}

func addDocxHeading(doc *document.Document, text string) {
	para := doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(13 * measurement.Point)
	run.AddText(text)
}

func addDocxText(doc *document.Document, text string) {
	doc.AddParagraph().AddRun().AddText(text)
}

func addDocxBullet(doc *document.Document, text string) {
	doc.AddParagraph().AddRun().AddText("• " + text)
}
