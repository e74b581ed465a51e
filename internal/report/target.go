package report

// TargetRef identifies a single text field in the document: an overview
// field when no IDs are set, a parent task field when only ParentID is set,
// or a subtask field when both IDs are set.
type TargetRef struct {
	Chapter   Chapter `json:"chapter,omitempty"`
	ParentID  string  `json:"parentId,omitempty"`
	SubtaskID string  `json:"subtaskId,omitempty"`
	Field     string  `json:"field"`
}

// ApplyText writes text into the referenced field through the store's
// regular update operations, keeping the not-found discipline.
func (s *Store) ApplyText(t TargetRef, text string) bool {
	switch {
	case t.ParentID == "":
		return s.UpdateOverviewField(t.Field, text)
	case t.SubtaskID == "":
		return s.UpdateParentTask(t.Chapter, t.ParentID, t.Field, text)
	default:
		return s.UpdateSubtask(t.Chapter, t.ParentID, t.SubtaskID, t.Field, text)
	}
}

// ReadText resolves the referenced field's current value.
func (d *Document) ReadText(t TargetRef) (string, bool) {
	if t.ParentID == "" {
		switch t.Field {
		case FieldDate:
			return d.Overview.Date, true
		case FieldClientInfo:
			return d.Overview.ClientInfo, true
		case FieldPurpose:
			return d.Overview.Purpose, true
		case FieldWorkers:
			return d.Overview.Workers, true
		case FieldLocation:
			return d.Overview.Location, true
		}
		return "", false
	}
	tasks := d.Tasks(t.Chapter)
	for i := range tasks {
		task := &tasks[i]
		if task.ID != t.ParentID {
			continue
		}
		if t.SubtaskID == "" {
			return taskField(task.Title, task.Description, t.Field)
		}
		for j := range task.Subtasks {
			if task.Subtasks[j].ID == t.SubtaskID {
				return taskField(task.Subtasks[j].Title, task.Subtasks[j].Description, t.Field)
			}
		}
	}
	return "", false
}

func taskField(title, description, field string) (string, bool) {
	switch field {
	case "title":
		return title, true
	case "description":
		return description, true
	}
	return "", false
}
