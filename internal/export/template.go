package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/fieldreport/internal/report"
)

// placeholderRe matches {{ key }} tokens inside template text runs.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Placeholders flattens a report into the key/value pairs a Word
// template can reference.
func Placeholders(doc report.Document) map[string]string {
	values := map[string]string{
		"date":      doc.Overview.Date,
		"client":    doc.Overview.ClientInfo,
		"purpose":   doc.Overview.Purpose,
		"workers":   doc.Overview.Workers,
		"location":  doc.Overview.Location,
	}
	for _, ch := range report.Chapters {
		values[string(ch)] = chapterSummary(doc.Tasks(ch))
		values[string(ch)+"_count"] = strconv.Itoa(len(doc.Tasks(ch)))
	}
	return values
}

// chapterSummary renders a chapter's tasks as indented plain text,
// one task per line with its subtasks below it.
func chapterSummary(tasks []report.ParentTask) string {
	var sb strings.Builder
	for i, task := range tasks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		title := task.Title
		if title == "" {
			title = "Untitled Task"
		}
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, title))
		if task.Description != "" {
			sb.WriteString(" - ")
			sb.WriteString(task.Description)
		}
		for _, st := range task.Subtasks {
			sb.WriteByte('\n')
			stTitle := st.Title
			if stTitle == "" {
				stTitle = "Untitled Subtask"
			}
			sb.WriteString("   - ")
			sb.WriteString(stTitle)
		}
	}
	return sb.String()
}

// FillTemplate substitutes {{key}} placeholders in a docx template and
// returns the filled document. Unknown placeholders are left in place so
// template mistakes stay visible in the output.
func FillTemplate(template []byte, values map[string]string) ([]byte, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "fieldreport-tpl-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	// doc.WriteTo reads lazily from the underlying file, so keep the
	// handle open until the filled document has been written out.
	defer tmp.Close()

	if _, err := tmp.Write(template); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		substituteParagraph(para, values)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write filled docx: %w", err)
	}
	return buf.Bytes(), nil
}

func substituteParagraph(para *docx.Paragraph, values map[string]string) {
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			t, ok := rc.(*docx.Text)
			if !ok {
				continue
			}
			t.Text = substituteText(t.Text, values)
		}
	}
}

func substituteText(s string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}
