package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgallion1/fieldreport/internal/convert"
	"github.com/dgallion1/fieldreport/internal/report"
)

// ErrNoTemplate is returned when export is requested before a Word
// template has been uploaded.
var ErrNoTemplate = errors.New("no word template uploaded")

// Converter renders a filled docx to PDF. Implemented by convert.Client.
type Converter interface {
	Configured() bool
	ToPDF(ctx context.Context, docx []byte) ([]byte, error)
}

// Service owns the uploaded template and produces report downloads.
type Service struct {
	mu        sync.Mutex
	template  []byte
	store     *report.Store
	converter Converter
	log       *slog.Logger
}

func NewService(store *report.Store, converter Converter, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		converter: converter,
		log:       log,
	}
}

// SetTemplate installs the uploaded Word template. An empty upload
// clears it.
func (s *Service) SetTemplate(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(data) == 0 {
		s.template = nil
		return
	}
	s.template = append([]byte(nil), data...)
}

func (s *Service) HasTemplate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template != nil
}

// ExportDocx fills the uploaded template with the current report state.
// Without a template there is nothing to fill and no bytes are produced.
func (s *Service) ExportDocx(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	template := s.template
	s.mu.Unlock()

	if template == nil {
		return nil, ErrNoTemplate
	}

	doc := s.store.Snapshot()
	filled, err := FillTemplate(template, Placeholders(doc))
	if err != nil {
		return nil, fmt.Errorf("fill template: %w", err)
	}
	s.log.Info("exported docx", "client", doc.Overview.ClientInfo, "bytes", len(filled))
	return filled, nil
}

// ExportPDF fills the template and sends the result through the
// conversion service.
func (s *Service) ExportPDF(ctx context.Context) ([]byte, error) {
	filled, err := s.ExportDocx(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := s.converter.ToPDF(ctx, filled)
	if err != nil {
		return nil, fmt.Errorf("convert to pdf: %w", err)
	}
	if !convert.LooksLikePDF(pdf) {
		return nil, fmt.Errorf("convert to pdf: malformed result")
	}
	s.log.Info("exported pdf", "bytes", len(pdf))
	return pdf, nil
}

// PreviewCurrent renders the in-progress report for the browser preview.
func (s *Service) PreviewCurrent() (Preview, error) {
	return RenderPreview(s.store.Snapshot())
}
