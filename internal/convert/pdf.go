package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPageImage is returned when a PDF page carries no embedded image
// stream, so the import pipeline has nothing to crop from.
var ErrNoPageImage = errors.New("page has no embedded image")

// PageImage is one page of a scanned parts document, ready for cropping.
type PageImage struct {
	PageNr int
	Format string // "png", "jpg", ...
	Data   []byte
}

// PageImages extracts the embedded image of every page of a scanned PDF.
// Parts tables arrive as scans, so each page is expected to be a single
// full-page image; a page without one fails the whole import.
func PageImages(data []byte) ([]PageImage, error) {
	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("read pdf: no pages")
	}

	raw, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, conf)
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	// Keep the largest image per page. Scans occasionally carry small
	// auxiliary XObjects (logos, stamps) next to the page scan itself.
	byPage := make(map[int]PageImage)
	for _, pageMap := range raw {
		for _, img := range pageMap {
			buf, err := io.ReadAll(img)
			if err != nil {
				return nil, fmt.Errorf("read image stream: %w", err)
			}
			if prev, ok := byPage[img.PageNr]; ok && len(prev.Data) >= len(buf) {
				continue
			}
			byPage[img.PageNr] = PageImage{
				PageNr: img.PageNr,
				Format: img.FileType,
				Data:   buf,
			}
		}
	}

	pages := make([]PageImage, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		img, ok := byPage[pageNr]
		if !ok {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) == 0 {
				return nil, fmt.Errorf("page %d: %w", pageNr, ErrNoPageImage)
			}
			return nil, fmt.Errorf("page %d: image stream not extractable", pageNr)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// PageCount reports the number of pages without touching page content.
func PageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return ctx.PageCount, nil
}

// PlainText extracts the text layer of a PDF, pages separated by form feeds.
// Scanned documents usually have no text layer; callers treat "" as normal.
func PlainText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// LooksLikePDF is a cheap sanity check on bytes returned by the
// conversion service before they are offered for download.
func LooksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
