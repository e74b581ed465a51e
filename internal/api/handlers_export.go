package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/fieldreport/internal/export"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (s *Server) handleUploadTemplate(w http.ResponseWriter, r *http.Request) {
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
		jsonError(w, "failed to read template", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("template exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	s.exporter.SetTemplate(data)
	writeJSON(w, http.StatusOK, map[string]any{"templateLoaded": true, "bytes": len(data)})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	preview, err := s.exporter.PreviewCurrent()
	if err != nil {
		jsonError(w, "render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (s *Server) handleExportDocx(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportDocx(r.Context())
	if err != nil {
		if errors.Is(err, export.ErrNoTemplate) {
			jsonError(w, "no word template uploaded", http.StatusPreconditionFailed)
			return
		}
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("WorkReport_%s.docx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write(data)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportPDF(r.Context())
	if err != nil {
		if errors.Is(err, export.ErrNoTemplate) {
			jsonError(w, "no word template uploaded", http.StatusPreconditionFailed)
			return
		}
		jsonError(w, "export failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	name := fmt.Sprintf("WorkReport_%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write(data)
}
