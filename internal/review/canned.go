package review

import (
	"fmt"
	"strings"

	"github.com/dgallion1/fieldreport/internal/nav"
	"github.com/dgallion1/fieldreport/internal/report"
)

// cannedReview produces the stand-in review batch from a document snapshot.
// The checks are shallow on purpose: the engine simulates an external
// reviewer, it is not one.
func cannedReview(doc report.Document) []Suggestion {
	var out []Suggestion

	if strings.TrimSpace(doc.Overview.Purpose) == "" {
		s := newSuggestion(SeverityRequired, "completeness",
			"1. Overview — Purpose of Work",
			"The purpose of work is empty. Reports without a stated purpose are rejected by most clients.",
			report.TargetRef{Field: report.FieldPurpose})
		s.ProposedText = "Scheduled maintenance and inspection carried out per the service agreement."
		out = append(out, s)
	}

	for _, ch := range report.Chapters {
		label := nav.ChapterLabel(ch)
		for i, task := range doc.Tasks(ch) {
			if strings.TrimSpace(task.Title) == "" {
				out = append(out, newSuggestion(SeverityRequired, "completeness",
					fmt.Sprintf("%s — Task %d", label, i+1),
					"This task has no title. Name the unit of work so it can be referenced.",
					report.TargetRef{Chapter: ch, ParentID: task.ID, Field: "title"}))
			}
			if len(task.Subtasks) == 0 {
				out = append(out, newSuggestion(SeverityRecommended, "structure",
					fmt.Sprintf("%s — %s", label, orUntitled(task.Title)),
					"This task has no subtasks, so it will never count as complete.",
					report.TargetRef{Chapter: ch, ParentID: task.ID, Field: "description"}))
			}
			for _, st := range task.Subtasks {
				if desc := strings.TrimSpace(st.Description); desc != "" && !strings.HasSuffix(desc, ".") {
					s := newSuggestion(SeverityOptional, "clarity",
						fmt.Sprintf("%s — %s / %s", label, orUntitled(task.Title), orUntitled(st.Title)),
						"Work descriptions read better as full sentences.",
						report.TargetRef{Chapter: ch, ParentID: task.ID, SubtaskID: st.ID, Field: "description"})
					s.OriginalText = desc
					s.ProposedText = desc + "."
					out = append(out, s)
				}
				if ch == report.ChapterInspection && st.Title != "" && len(st.Measurements) == 0 {
					out = append(out, newSuggestion(SeverityOptional, "evidence",
						fmt.Sprintf("%s — %s / %s", label, orUntitled(task.Title), st.Title),
						"Inspection subtasks usually carry at least one recorded measurement.",
						report.TargetRef{Chapter: ch, ParentID: task.ID, SubtaskID: st.ID, Field: "description"}))
				}
			}
		}
	}
	return out
}

// polishText is the stand-in text-polishing pass: trims whitespace and
// closes the sentence. Repeated passes are idempotent beyond the first.
func polishText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Work carried out as planned; no deviations to report."
	}
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func orUntitled(title string) string {
	if title == "" {
		return nav.UntitledTask
	}
	return title
}
