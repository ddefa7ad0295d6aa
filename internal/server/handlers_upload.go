package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/types"
)

// UploadResponse is the response for /api/upload-resume
type UploadResponse struct {
	FileInfo   FileInfo          `json:"fileInfo"`
	ParsedData *types.ResumeData `json:"parsedData"`
}

// FileInfo describes the uploaded file
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(ingestion.MaxUploadBytes); err != nil {
		s.errorFor(w, &ErrValidation{Field: "file", Message: "invalid multipart body: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorFor(w, &ErrValidation{Field: "file", Message: "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxUploadBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read upload: "+err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	text, err := ingestion.ExtractText(mimeType, data)
	if err != nil {
		if errors.Is(err, ingestion.ErrUnsupportedType) ||
			errors.Is(err, ingestion.ErrFileTooLarge) ||
			errors.Is(err, ingestion.ErrContentTooShort) {
			s.errorFor(w, &ErrValidation{Field: "file", Message: err.Error()})
			return
		}
		s.errorFor(w, err)
		return
	}

	parsed, err := ingestion.ParseResume(r.Context(), s.oracle, text)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		FileInfo: FileInfo{
			Name: header.Filename,
			Size: header.Size,
			Type: mimeType,
		},
		ParsedData: parsed,
	})
}
