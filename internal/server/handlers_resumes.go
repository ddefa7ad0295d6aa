package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// ResumeRequest is the request body for creating or updating a resume.
type ResumeRequest struct {
	Title string           `json:"title"`
	Data  types.ResumeData `json:"data"`
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListResumes(r.Context())
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeResumeRequest(w, r)
	if !ok {
		return
	}

	resume, err := s.store.CreateResume(r.Context(), req.Title, req.Data)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resume, err := s.store.GetResume(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: id})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	req, ok := s.decodeResumeRequest(w, r)
	if !ok {
		return
	}

	resume, err := s.store.UpdateResume(r.Context(), id, req.Title, req.Data)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: id})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.DeleteResume(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: id})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Listing analyses for an unknown resume is a 404, not an empty list.
	if _, err := s.store.GetResume(r.Context(), id); errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: id})
		return
	} else if err != nil {
		s.errorFor(w, err)
		return
	}

	analyses, err := s.store.ListAnalysesByResume(r.Context(), id)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analyses)
}

// decodeResumeRequest parses and validates a create/update body. On failure
// it writes the error response and returns ok=false.
func (s *Server) decodeResumeRequest(w http.ResponseWriter, r *http.Request) (*ResumeRequest, bool) {
	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	if req.Title == "" {
		s.errorFor(w, &ErrValidation{Field: "title", Message: "title is required"})
		return nil, false
	}
	if req.Data.Template == "" {
		req.Data.Template = types.TemplateModern
	}
	if !types.ValidTemplate(req.Data.Template) {
		s.errorFor(w, &ErrValidation{Field: "data.template", Message: "unknown template: " + req.Data.Template})
		return nil, false
	}
	if err := req.Data.Validate(); err != nil {
		s.errorFor(w, &ErrValidation{Field: "data", Message: err.Error()})
		return nil, false
	}
	return &req, true
}
