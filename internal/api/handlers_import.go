package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/fieldreport/internal/report"
	"github.com/dgallion1/fieldreport/internal/wizard"
)

func (s *Server) handleImportState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return data, true
}

func (s *Server) handleImportUpload(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if err := s.importer.Upload(data); err != nil {
		switch {
		case errors.Is(err, wizard.ErrUnsupportedInput):
			jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
		case errors.Is(err, wizard.ErrWrongStage):
			jsonError(w, err.Error(), http.StatusConflict)
		default:
			jsonError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) handleImportSelectPage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.importer.SelectPage(req.Page)
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) handleImportExtract(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	if err := s.importer.Extract(r.Context(), data); err != nil {
		if errors.Is(err, wizard.ErrWrongStage) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Chapter   string `json:"chapter" validate:"required"`
		ParentID  string `json:"parentId" validate:"required"`
		SubtaskID string `json:"subtaskId" validate:"required"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.importer.Confirm(report.Chapter(req.Chapter), req.ParentID, req.SubtaskID); err != nil {
		if errors.Is(err, wizard.ErrWrongStage) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) handleImportBack(w http.ResponseWriter, r *http.Request) {
	s.importer.Back()
	writeJSON(w, http.StatusOK, s.importer.State())
}

func (s *Server) handleImportClose(w http.ResponseWriter, r *http.Request) {
	s.importer.Close()
	writeJSON(w, http.StatusOK, s.importer.State())
}
