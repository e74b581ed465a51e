package nav

import "github.com/dgallion1/fieldreport/internal/report"

// Display labels for breadcrumb paths and the navigation tree.
const (
	RootLabel           = "Work Report"
	OverviewLabel       = "1. Overview"
	UnknownSectionLabel = "Unknown Section"
	UntitledTask        = "Untitled Task"
	UntitledSubtask     = "Untitled Subtask"
)

// ChapterLabel returns the display label of a structured chapter.
func ChapterLabel(ch report.Chapter) string {
	switch ch {
	case report.ChapterInspection:
		return "2. Inspection"
	case report.ChapterAbnormality:
		return "3. Abnormalities"
	case report.ChapterVerification:
		return "4. Verification"
	}
	return UnknownSectionLabel
}

// Breadcrumbs resolves an active node ID to a display path against the
// current document. The overview anchor is checked first, then each
// chapter's parent tasks, then their subtasks. An ID matching nothing
// resolves to the unknown-section sentinel rather than failing.
func Breadcrumbs(doc report.Document, activeID string) []string {
	if activeID == "" {
		return []string{RootLabel}
	}
	if activeID == report.OverviewAnchor {
		return []string{RootLabel, OverviewLabel}
	}
	for _, ch := range report.Chapters {
		for _, task := range doc.Tasks(ch) {
			if task.ID == activeID {
				return []string{RootLabel, ChapterLabel(ch), orDefault(task.Title, UntitledTask)}
			}
		}
		for _, task := range doc.Tasks(ch) {
			for _, st := range task.Subtasks {
				if st.ID == activeID {
					return []string{
						RootLabel,
						ChapterLabel(ch),
						orDefault(task.Title, UntitledTask),
						orDefault(st.Title, UntitledSubtask),
					}
				}
			}
		}
	}
	return []string{RootLabel, UnknownSectionLabel}
}

// SubtaskComplete reports whether a subtask counts as complete. Title
// presence is a deliberately coarse placeholder for deeper validation.
func SubtaskComplete(st report.Subtask) bool {
	return st.Title != ""
}

// ParentComplete reports whether a parent task counts as complete: at least
// one subtask, all of them complete. A task with zero subtasks is always
// incomplete.
func ParentComplete(task report.ParentTask) bool {
	if len(task.Subtasks) == 0 {
		return false
	}
	for _, st := range task.Subtasks {
		if !SubtaskComplete(st) {
			return false
		}
	}
	return true
}

// InFocus applies the focus-mode visibility rule for a chapter-level section
// key. When focus mode is off or no section is active, everything is in
// focus. Otherwise a chapter is in focus iff the active ID is the chapter
// key itself, the overview anchor for the overview chapter, or any task or
// subtask nested under the chapter. Suppression is display-only.
func (e *Engine) InFocus(doc report.Document, sectionKey string) bool {
	e.mu.Lock()
	focus, active := e.focusMode, e.active
	e.mu.Unlock()

	if !focus || active == "" {
		return true
	}
	if active == sectionKey {
		return true
	}
	owner, ok := doc.ChapterOf(active)
	return ok && owner == sectionKey
}

// ExpandableIDs lists the IDs the expand-all action should open: every
// chapter key and every parent task.
func ExpandableIDs(doc report.Document) []string {
	var ids []string
	for _, ch := range report.Chapters {
		ids = append(ids, string(ch))
		for _, task := range doc.Tasks(ch) {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

// FilteredTasks projects a chapter's tasks through the current filter mode:
// in incomplete mode, complete tasks are hidden. Recomputed on every read.
func (e *Engine) FilteredTasks(doc report.Document, ch report.Chapter) []report.ParentTask {
	e.mu.Lock()
	filter := e.filterMode
	e.mu.Unlock()

	tasks := doc.Tasks(ch)
	if filter != FilterIncomplete {
		return tasks
	}
	var out []report.ParentTask
	for _, task := range tasks {
		if !ParentComplete(task) {
			out = append(out, task)
		}
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
