package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/fieldreport/internal/report"
)

func sampleDoc() report.Document {
	doc := report.NewDocument("Acme Corp")
	doc.Overview.Purpose = "Quarterly pump inspection"
	doc.InspectionTasks = []report.ParentTask{
		{
			ID:          "t1",
			Title:       "Pump Check",
			Description: "Main feed pump",
			Subtasks: []report.Subtask{
				{ID: "s1", Title: "Check Seal"},
				{ID: "s2", Title: ""},
			},
		},
	}
	return doc
}

func TestPlaceholders(t *testing.T) {
	values := Placeholders(sampleDoc())

	if got := values["client"]; got != "Acme Corp" {
		t.Errorf("client = %q", got)
	}
	if got := values["purpose"]; got != "Quarterly pump inspection" {
		t.Errorf("purpose = %q", got)
	}
	if got := values["inspectionTasks_count"]; got != "1" {
		t.Errorf("inspectionTasks_count = %q", got)
	}
	summary := values["inspectionTasks"]
	for _, want := range []string{"1. Pump Check", "Main feed pump", "Check Seal", "Untitled Subtask"} {
		if !strings.Contains(summary, want) {
			t.Errorf("inspectionTasks summary missing %q:\n%s", want, summary)
		}
	}
	if got := values["abnormalityTasks"]; got != "" {
		t.Errorf("empty chapter summary = %q, want empty", got)
	}
}

func TestSubstituteText(t *testing.T) {
	values := map[string]string{"client": "Acme Corp", "date": "2026-01-05"}

	tests := []struct {
		in   string
		want string
	}{
		{"Report for {{client}}", "Report for Acme Corp"},
		{"{{ client }} on {{ date }}", "Acme Corp on 2026-01-05"},
		{"{{missing}} stays", "{{missing}} stays"},
		{"no tokens here", "no tokens here"},
	}
	for _, tt := range tests {
		if got := substituteText(tt.in, values); got != tt.want {
			t.Errorf("substituteText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// buildTemplate assembles a minimal docx carrying placeholder text.
func buildTemplate(t *testing.T, lines ...string) []byte {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, line := range lines {
		w.AddParagraph().AddText(line)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("build template: %v", err)
	}
	return buf.Bytes()
}

func docxText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}
	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestFillTemplate(t *testing.T) {
	template := buildTemplate(t,
		"Work Report for {{client}}",
		"Purpose: {{purpose}}",
		"Unknown: {{nonsense}}",
	)

	filled, err := FillTemplate(template, Placeholders(sampleDoc()))
	if err != nil {
		t.Fatalf("FillTemplate() error: %v", err)
	}

	text := docxText(t, filled)
	if !strings.Contains(text, "Work Report for Acme Corp") {
		t.Errorf("client placeholder not substituted:\n%s", text)
	}
	if !strings.Contains(text, "Purpose: Quarterly pump inspection") {
		t.Errorf("purpose placeholder not substituted:\n%s", text)
	}
	if !strings.Contains(text, "{{nonsense}}") {
		t.Errorf("unknown placeholder should survive:\n%s", text)
	}
}

func TestFillTemplate_BadTemplate(t *testing.T) {
	if _, err := FillTemplate([]byte("not a zip archive"), nil); err == nil {
		t.Fatal("FillTemplate() expected error for malformed template")
	}
}
