package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/dgallion1/fieldreport/internal/nav"
	"github.com/dgallion1/fieldreport/internal/report"
)

// TOCEntry is one heading in the rendered preview.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
}

// Preview is the browser-facing rendition of a report.
type Preview struct {
	HTML string     `json:"html"`
	TOC  []TOCEntry `json:"toc"`
}

// RenderMarkdown lays the report out as markdown, mirroring the printed
// document's chapter order.
func RenderMarkdown(doc report.Document) string {
	var sb strings.Builder

	sb.WriteString("# " + nav.RootLabel + "\n\n")
	if doc.Overview.ClientInfo != "" {
		sb.WriteString(doc.Overview.ClientInfo + " - " + doc.Overview.Date + "\n\n")
	}

	sb.WriteString("## " + nav.OverviewLabel + "\n\n")
	if doc.Overview.Purpose != "" {
		sb.WriteString(doc.Overview.Purpose + "\n\n")
	}
	if doc.Overview.Workers != "" {
		sb.WriteString("Workers: " + doc.Overview.Workers + "\n\n")
	}
	if doc.Overview.Location != "" {
		sb.WriteString("Location: " + doc.Overview.Location + "\n\n")
	}

	for _, ch := range report.Chapters {
		sb.WriteString("## " + nav.ChapterLabel(ch) + "\n\n")
		tasks := doc.Tasks(ch)
		if len(tasks) == 0 {
			sb.WriteString("_No tasks._\n\n")
			continue
		}
		for _, task := range tasks {
			title := task.Title
			if title == "" {
				title = nav.UntitledTask
			}
			sb.WriteString("- **" + title + "**\n")
			if task.Description != "" {
				sb.WriteString("  " + task.Description + "\n")
			}
			for _, st := range task.Subtasks {
				stTitle := st.Title
				if stTitle == "" {
					stTitle = nav.UntitledSubtask
				}
				sb.WriteString("  - " + stTitle + "\n")
				for _, m := range st.Measurements {
					sb.WriteString(fmt.Sprintf("    - %s: %s %s\n", m.Label, m.Value, m.Unit))
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderPreview converts the report to HTML and extracts its table of
// contents from the rendered headings.
func RenderPreview(doc report.Document) (Preview, error) {
	md := RenderMarkdown(doc)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return Preview{}, fmt.Errorf("render markdown: %w", err)
	}

	toc, err := extractTOC(buf.Bytes())
	if err != nil {
		return Preview{}, fmt.Errorf("extract toc: %w", err)
	}
	return Preview{HTML: buf.String(), TOC: toc}, nil
}

func extractTOC(htmlSrc []byte) ([]TOCEntry, error) {
	root, err := html.Parse(bytes.NewReader(htmlSrc))
	if err != nil {
		return nil, err
	}

	var toc []TOCEntry
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				toc = append(toc, TOCEntry{Level: level, Title: textContent(n)})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return toc, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
