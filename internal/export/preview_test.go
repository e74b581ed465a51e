package export

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleDoc())

	for _, want := range []string{
		"# Work Report",
		"## 1. Overview",
		"## 2. Inspection",
		"## 3. Abnormalities",
		"## 4. Verification",
		"**Pump Check**",
		"- Check Seal",
		"Untitled Subtask",
		"_No tasks._",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderPreview(t *testing.T) {
	preview, err := RenderPreview(sampleDoc())
	if err != nil {
		t.Fatalf("RenderPreview() error: %v", err)
	}

	if !strings.Contains(preview.HTML, "<h1>Work Report</h1>") {
		t.Errorf("HTML missing title heading:\n%s", preview.HTML)
	}

	wantTOC := []TOCEntry{
		{Level: 1, Title: "Work Report"},
		{Level: 2, Title: "1. Overview"},
		{Level: 2, Title: "2. Inspection"},
		{Level: 2, Title: "3. Abnormalities"},
		{Level: 2, Title: "4. Verification"},
	}
	if len(preview.TOC) != len(wantTOC) {
		t.Fatalf("TOC = %+v, want %d entries", preview.TOC, len(wantTOC))
	}
	for i, want := range wantTOC {
		if preview.TOC[i] != want {
			t.Errorf("TOC[%d] = %+v, want %+v", i, preview.TOC[i], want)
		}
	}
}
