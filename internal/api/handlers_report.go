package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/fieldreport/internal/report"
)

// chapterParam resolves the {chapter} URL segment. Unknown chapters are
// reported to the caller; the store itself would just no-op.
func chapterParam(r *http.Request) (report.Chapter, error) {
	ch := report.Chapter(chi.URLParam(r, "chapter"))
	for _, known := range report.Chapters {
		if ch == known {
			return ch, nil
		}
	}
	return "", fmt.Errorf("unknown chapter %q", ch)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleUpdateOverview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field" validate:"required"`
		Value string `json:"value"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.UpdateOverviewField(req.Field, req.Value) {
		jsonError(w, "unknown overview field: "+req.Field, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().Overview)
}

func (s *Server) handleAddParentTask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	task, ok := s.store.AddParentTask(ch)
	if !ok {
		jsonError(w, "chapter rejected task", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateParentTask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Field string `json:"field" validate:"required,oneof=title description"`
		Value string `json:"value"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.UpdateParentTask(ch, chi.URLParam(r, "taskID"), req.Field, req.Value) {
		jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveParentTask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.RemoveParentTask(ch, chi.URLParam(r, "taskID")) {
		jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSubtask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	st, ok := s.store.AddSubtask(ch, chi.URLParam(r, "taskID"))
	if !ok {
		jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleUpdateSubtask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Field string `json:"field" validate:"required,oneof=title description"`
		Value string `json:"value"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.UpdateSubtask(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), req.Field, req.Value) {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveSubtask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.RemoveSubtask(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID")) {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateSubtask(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cp, ok := s.store.DuplicateSubtask(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"))
	if !ok {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, cp)
}

func (s *Server) handleAddMeasurement(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Label string `json:"label" validate:"required"`
		Value string `json:"value"`
		Unit  string `json:"unit"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	m, ok := s.store.AddMeasurement(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"),
		report.Measurement{Label: req.Label, Value: req.Value, Unit: req.Unit})
	if !ok {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleRemoveMeasurement(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.RemoveMeasurement(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), chi.URLParam(r, "recordID")) {
		jsonError(w, "measurement not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddParts(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Parts []struct {
			Name     string            `json:"name" validate:"required"`
			Quantity int               `json:"quantity"`
			Extra    map[string]string `json:"extra"`
		} `json:"parts" validate:"required,min=1,dive"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	parts := make([]report.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		qty := p.Quantity
		if qty < 1 {
			qty = 1
		}
		parts = append(parts, report.Part{Name: p.Name, Quantity: qty, Extra: p.Extra})
	}
	if !s.store.AddParts(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), parts) {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemovePart(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.RemovePart(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), chi.URLParam(r, "recordID")) {
		jsonError(w, "part not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddImage(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	img, ok := s.store.AddImage(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), r.FormValue("caption"), data)
	if !ok {
		jsonError(w, "subtask not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.store.RemoveImage(ch, chi.URLParam(r, "taskID"), chi.URLParam(r, "subID"), chi.URLParam(r, "recordID")) {
		jsonError(w, "image not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
