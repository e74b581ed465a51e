package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/dgallion1/fieldreport/internal/convert"
	"github.com/dgallion1/fieldreport/internal/extract"
	"github.com/dgallion1/fieldreport/internal/report"
)

// ImportStage is where the parts-import pipeline currently sits.
type ImportStage string

const (
	StageUpload     ImportStage = "upload"
	StageCrop       ImportStage = "crop"
	StageExtracting ImportStage = "extracting"
	StageReview     ImportStage = "review"
)

var (
	ErrWrongStage       = errors.New("operation not valid in current stage")
	ErrUnsupportedInput = errors.New("unsupported upload type")
)

// Extractor pulls part records out of a table image. Implemented by
// extract.ClaudeClient.
type Extractor interface {
	ExtractParts(ctx context.Context, image []byte) ([]extract.PartRecord, error)
}

// ImportState is a snapshot of the pipeline for the UI.
type ImportState struct {
	Stage     ImportStage          `json:"stage"`
	PageCount int                  `json:"pageCount"`
	Page      int                  `json:"page"`
	Parts     []extract.PartRecord `json:"parts,omitempty"`
}

// PartsImporter drives the scanned-parts-table import: upload the scan,
// pick a page, crop the table, extract, review, confirm into a subtask.
type PartsImporter struct {
	mu        sync.Mutex
	stage     ImportStage
	pages     []convert.PageImage
	page      int
	cropped   []byte
	parts     []extract.PartRecord
	extractor Extractor
	store     *report.Store
	log       *slog.Logger
}

func NewPartsImporter(store *report.Store, extractor Extractor, log *slog.Logger) *PartsImporter {
	return &PartsImporter{
		stage:     StageUpload,
		extractor: extractor,
		store:     store,
		log:       log,
	}
}

// Upload accepts an image or a scanned PDF and moves to cropping. A PDF
// becomes one croppable image per page.
func (p *PartsImporter) Upload(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage != StageUpload {
		return fmt.Errorf("%w: %s", ErrWrongStage, p.stage)
	}

	contentType := http.DetectContentType(data)
	switch {
	case contentType == "application/pdf":
		pages, err := convert.PageImages(data)
		if err != nil {
			return fmt.Errorf("read scanned pdf: %w", err)
		}
		p.pages = pages
	case strings.HasPrefix(contentType, "image/"):
		p.pages = []convert.PageImage{{PageNr: 1, Format: strings.TrimPrefix(contentType, "image/"), Data: data}}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedInput, contentType)
	}

	p.page = 0
	p.stage = StageCrop
	p.log.Info("import upload accepted", "pages", len(p.pages), "type", contentType)
	return nil
}

// SelectPage switches the page being cropped. Out-of-range indexes are
// clamped.
func (p *PartsImporter) SelectPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != StageCrop {
		return
	}
	if page < 0 {
		page = 0
	}
	if page > len(p.pages)-1 {
		page = len(p.pages) - 1
	}
	p.page = page
}

// CurrentPage returns the image under the crop tool.
func (p *PartsImporter) CurrentPage() (convert.PageImage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pages) == 0 {
		return convert.PageImage{}, false
	}
	return p.pages[p.page], true
}

// Extract sends the cropped region through the extractor. On success
// the pipeline moves to review; on failure it falls back to cropping.
func (p *PartsImporter) Extract(ctx context.Context, cropped []byte) error {
	p.mu.Lock()
	if p.stage != StageCrop {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrWrongStage, p.stage)
	}
	p.stage = StageExtracting
	p.cropped = cropped
	p.mu.Unlock()

	parts, err := p.extractor.ExtractParts(ctx, cropped)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stage != StageExtracting {
		// Close or Back moved the pipeline while the call was in
		// flight; the result belongs to an abandoned import.
		p.log.Info("discarding stale extraction result", "stage", p.stage)
		return nil
	}
	if err != nil {
		p.stage = StageCrop
		p.parts = nil
		return fmt.Errorf("extract parts: %w", err)
	}
	p.stage = StageReview
	p.parts = parts
	p.log.Info("parts extracted", "count", len(parts))
	return nil
}

// Parts returns the extracted rows awaiting review.
func (p *PartsImporter) Parts() []extract.PartRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]extract.PartRecord(nil), p.parts...)
}

// Confirm imports the reviewed rows into a subtask's parts list and
// resets the pipeline. Fails without writing when the subtask is gone.
func (p *PartsImporter) Confirm(chapter report.Chapter, parentID, subtaskID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage != StageReview {
		return fmt.Errorf("%w: %s", ErrWrongStage, p.stage)
	}

	parts := make([]report.Part, 0, len(p.parts))
	for _, rec := range p.parts {
		parts = append(parts, report.Part{
			Name:     rec.Name,
			Quantity: rec.Quantity,
			Extra:    rec.Extra,
		})
	}
	if !p.store.AddParts(chapter, parentID, subtaskID, parts) {
		return fmt.Errorf("subtask %s not found", subtaskID)
	}

	p.log.Info("parts imported", "count", len(parts), "subtask", subtaskID)
	p.reset()
	return nil
}

// Back steps the pipeline one stage backward, discarding downstream
// results: review drops the extracted rows, crop drops the upload.
func (p *PartsImporter) Back() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.stage {
	case StageReview:
		p.parts = nil
		p.cropped = nil
		p.stage = StageCrop
	case StageCrop:
		p.pages = nil
		p.page = 0
		p.stage = StageUpload
	}
}

// Close abandons the import and resets to a fresh upload stage.
func (p *PartsImporter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

func (p *PartsImporter) reset() {
	p.stage = StageUpload
	p.pages = nil
	p.page = 0
	p.cropped = nil
	p.parts = nil
}

// State snapshots the pipeline for the UI.
func (p *PartsImporter) State() ImportState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ImportState{
		Stage:     p.stage,
		PageCount: len(p.pages),
		Page:      p.page,
		Parts:     append([]extract.PartRecord(nil), p.parts...),
	}
}
