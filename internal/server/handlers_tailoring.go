package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/tailoring"
	"github.com/jonathan/resume-studio/internal/types"
)

// AnalyzeJobRequest is the request body for /api/analyze-job
type AnalyzeJobRequest struct {
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
}

// AnalyzeJobResponse is the response for /api/analyze-job
type AnalyzeJobResponse struct {
	Analysis       *types.JobAnalysis `json:"analysis"`
	TailoredResume types.ResumeData   `json:"tailoredResume"`
	AnalysisID     string             `json:"analysisId"`
}

// ATSScanRequest is the request body for /api/ats-scan
type ATSScanRequest struct {
	ResumeID string `json:"resumeId"`
}

// EnhanceATSRequest is the request body for /api/enhance-ats
type EnhanceATSRequest struct {
	ResumeID    string             `json:"resumeId"`
	ATSAnalysis *types.ATSAnalysis `json:"atsAnalysis"`
}

func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeID == "" {
		s.errorFor(w, &ErrValidation{Field: "resumeId", Message: "resumeId is required"})
		return
	}
	if len(req.JobDescription) < tailoring.MinJobDescriptionLength {
		s.errorFor(w, &ErrValidation{
			Field:   "jobDescription",
			Message: fmt.Sprintf("job description must be at least %d characters", tailoring.MinJobDescriptionLength),
		})
		return
	}

	resume, err := s.store.GetResume(r.Context(), req.ResumeID)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: req.ResumeID})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}

	analysis, err := s.reconciler.AnalyzeJobDescription(r.Context(), req.JobDescription, &resume.Data)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	tailored := tailoring.TailoredResume(&resume.Data, analysis)

	record, err := s.store.CreateAnalysis(r.Context(), &types.JobAnalysisRecord{
		ResumeID:       req.ResumeID,
		JobDescription: req.JobDescription,
		Analysis:       *analysis,
		TailoredResume: &tailored,
	})
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeJobResponse{
		Analysis:       analysis,
		TailoredResume: tailored,
		AnalysisID:     record.ID,
	})
}

func (s *Server) handleATSScan(w http.ResponseWriter, r *http.Request) {
	var req ATSScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeID == "" {
		s.errorFor(w, &ErrValidation{Field: "resumeId", Message: "resumeId is required"})
		return
	}

	resume, err := s.store.GetResume(r.Context(), req.ResumeID)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: req.ResumeID})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}

	analysis, err := s.scorer.ScoreCompatibility(r.Context(), &resume.Data)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleEnhanceATS(w http.ResponseWriter, r *http.Request) {
	var req EnhanceATSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeID == "" {
		s.errorFor(w, &ErrValidation{Field: "resumeId", Message: "resumeId is required"})
		return
	}
	if req.ATSAnalysis == nil {
		s.errorFor(w, &ErrValidation{Field: "atsAnalysis", Message: "atsAnalysis is required"})
		return
	}

	resume, err := s.store.GetResume(r.Context(), req.ResumeID)
	if errors.Is(err, store.ErrNotFound) {
		s.errorFor(w, &ErrResumeNotFound{ID: req.ResumeID})
		return
	}
	if err != nil {
		s.errorFor(w, err)
		return
	}

	enhanced, err := s.scorer.EnhanceForATS(r.Context(), &resume.Data, req.ATSAnalysis)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	updated, err := s.store.UpdateResume(r.Context(), resume.ID, resume.Title, enhanced)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}
