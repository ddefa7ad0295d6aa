package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	pdfMIME  = "application/pdf"
	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeExportData(w, r)
	if !ok {
		return
	}

	pdf, err := s.renderPDF(r.Context(), data)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.sendAttachment(w, pdf, pdfMIME, exportFilename(data, "pdf"))
}

func (s *Server) handleExportWord(w http.ResponseWriter, r *http.Request) {
	data, ok := s.decodeExportData(w, r)
	if !ok {
		return
	}

	docx, err := s.renderDOCX(data)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.sendAttachment(w, docx, docxMIME, exportFilename(data, "docx"))
}

// decodeExportData parses an export body. Exports are deliberately lenient:
// a half-filled resume still renders, only a truly empty one is rejected.
func (s *Server) decodeExportData(w http.ResponseWriter, r *http.Request) (*types.ResumeData, bool) {
	var data types.ResumeData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	if data.PersonalInfo.FullName == "" {
		s.errorFor(w, &ErrValidation{Field: "personalInfo.fullName", Message: "fullName is required"})
		return nil, false
	}
	if data.Template == "" || !types.ValidTemplate(data.Template) {
		data.Template = types.TemplateModern
	}
	return &data, true
}

func (s *Server) sendAttachment(w http.ResponseWriter, body []byte, mimeType, filename string) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func exportFilename(data *types.ResumeData, ext string) string {
	name := data.PersonalInfo.FullName
	if name == "" {
		name = "resume"
	}
	return name + "_Resume." + ext
}
