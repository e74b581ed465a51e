package report

import (
	"time"

	"github.com/google/uuid"
)

// Chapter selects one of the three structured task sequences of a report.
// The values double as section keys in navigation state.
type Chapter string

const (
	ChapterInspection   Chapter = "inspectionTasks"
	ChapterAbnormality  Chapter = "abnormalityTasks"
	ChapterVerification Chapter = "verificationTasks"
)

// Chapters lists all structured chapters in display order.
var Chapters = []Chapter{ChapterInspection, ChapterAbnormality, ChapterVerification}

// OverviewAnchor is the navigation key of the flat overview chapter.
const OverviewAnchor = "overview"

// Overview field names accepted by UpdateOverviewField.
const (
	FieldDate       = "date"
	FieldClientInfo = "clientInfo"
	FieldPurpose    = "purpose"
	FieldWorkers    = "workers"
	FieldLocation   = "location"
)

// Overview is the fixed-shape first chapter of a report.
type Overview struct {
	Date       string `json:"date"`
	ClientInfo string `json:"clientInfo"`
	Purpose    string `json:"purpose"`
	Workers    string `json:"workers"`
	Location   string `json:"location"`
}

// Measurement is a single recorded reading on a subtask.
type Measurement struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Part is a consumed part. External extraction may invent new columns, so
// the schema is a fixed core plus an open attribute map.
type Part struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Quantity int               `json:"quantity"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// Image is an attached photo with a caption.
type Image struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Data    []byte `json:"data,omitempty"`
}

// Subtask is the leaf unit of recorded work.
type Subtask struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Measurements []Measurement `json:"measurements"`
	Parts        []Part        `json:"parts"`
	Images       []Image       `json:"images"`
}

// ParentTask is a named unit of work within a chapter.
type ParentTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subtasks    []Subtask `json:"subtasks"`
}

// Document is the root aggregate of one report session.
type Document struct {
	Overview          Overview     `json:"overview"`
	InspectionTasks   []ParentTask `json:"inspectionTasks"`
	AbnormalityTasks  []ParentTask `json:"abnormalityTasks"`
	VerificationTasks []ParentTask `json:"verificationTasks"`
}

// NewDocument returns an empty report dated now.
func NewDocument(clientInfo string) Document {
	return Document{
		Overview: Overview{
			Date:       time.Now().Format("2006-01-02 15:04"),
			ClientInfo: clientInfo,
		},
		InspectionTasks:   []ParentTask{},
		AbnormalityTasks:  []ParentTask{},
		VerificationTasks: []ParentTask{},
	}
}

func newID() string {
	return uuid.NewString()
}

// Tasks returns the task sequence of the given chapter, or nil for an
// unknown chapter.
func (d *Document) Tasks(ch Chapter) []ParentTask {
	switch ch {
	case ChapterInspection:
		return d.InspectionTasks
	case ChapterAbnormality:
		return d.AbnormalityTasks
	case ChapterVerification:
		return d.VerificationTasks
	}
	return nil
}

func (d *Document) setTasks(ch Chapter, tasks []ParentTask) {
	switch ch {
	case ChapterInspection:
		d.InspectionTasks = tasks
	case ChapterAbnormality:
		d.AbnormalityTasks = tasks
	case ChapterVerification:
		d.VerificationTasks = tasks
	}
}

// FindParent locates a parent task by ID across all chapters.
func (d *Document) FindParent(id string) (Chapter, *ParentTask) {
	for _, ch := range Chapters {
		tasks := d.Tasks(ch)
		for i := range tasks {
			if tasks[i].ID == id {
				return ch, &tasks[i]
			}
		}
	}
	return "", nil
}

// FindSubtask locates a subtask by ID across all chapters, returning its
// chapter and enclosing parent as well.
func (d *Document) FindSubtask(id string) (Chapter, *ParentTask, *Subtask) {
	for _, ch := range Chapters {
		tasks := d.Tasks(ch)
		for i := range tasks {
			for j := range tasks[i].Subtasks {
				if tasks[i].Subtasks[j].ID == id {
					return ch, &tasks[i], &tasks[i].Subtasks[j]
				}
			}
		}
	}
	return "", nil, nil
}

// ChapterOf resolves which chapter a task or subtask ID belongs to.
// The overview anchor resolves to the overview chapter key.
func (d *Document) ChapterOf(id string) (string, bool) {
	if id == OverviewAnchor {
		return OverviewAnchor, true
	}
	if ch, p := d.FindParent(id); p != nil {
		return string(ch), true
	}
	if ch, _, st := d.FindSubtask(id); st != nil {
		return string(ch), true
	}
	return "", false
}

// AllIDs returns every entity identifier in the document: parent tasks,
// subtasks, measurements, parts and images.
func (d *Document) AllIDs() []string {
	var ids []string
	for _, ch := range Chapters {
		for _, t := range d.Tasks(ch) {
			ids = append(ids, t.ID)
			for _, st := range t.Subtasks {
				ids = append(ids, st.ID)
				for _, m := range st.Measurements {
					ids = append(ids, m.ID)
				}
				for _, p := range st.Parts {
					ids = append(ids, p.ID)
				}
				for _, img := range st.Images {
					ids = append(ids, img.ID)
				}
			}
		}
	}
	return ids
}

// Clone returns a deep copy of the document with identifiers preserved.
func (d Document) Clone() Document {
	out := d
	out.InspectionTasks = cloneTasks(d.InspectionTasks)
	out.AbnormalityTasks = cloneTasks(d.AbnormalityTasks)
	out.VerificationTasks = cloneTasks(d.VerificationTasks)
	return out
}

func cloneTasks(tasks []ParentTask) []ParentTask {
	out := make([]ParentTask, len(tasks))
	for i, t := range tasks {
		out[i] = t
		out[i].Subtasks = make([]Subtask, len(t.Subtasks))
		for j, st := range t.Subtasks {
			out[i].Subtasks[j] = cloneSubtask(st, false)
		}
	}
	return out
}

// cloneSubtask deep-copies a subtask. With remint set, every entity in the
// copy gets a freshly generated identifier.
func cloneSubtask(st Subtask, remint bool) Subtask {
	out := st
	if remint {
		out.ID = newID()
	}
	out.Measurements = make([]Measurement, len(st.Measurements))
	for i, m := range st.Measurements {
		out.Measurements[i] = m
		if remint {
			out.Measurements[i].ID = newID()
		}
	}
	out.Parts = make([]Part, len(st.Parts))
	for i, p := range st.Parts {
		out.Parts[i] = p
		if remint {
			out.Parts[i].ID = newID()
		}
		if p.Extra != nil {
			out.Parts[i].Extra = make(map[string]string, len(p.Extra))
			for k, v := range p.Extra {
				out.Parts[i].Extra[k] = v
			}
		}
	}
	out.Images = make([]Image, len(st.Images))
	for i, img := range st.Images {
		out.Images[i] = img
		if remint {
			out.Images[i].ID = newID()
		}
		if img.Data != nil {
			out.Images[i].Data = append([]byte(nil), img.Data...)
		}
	}
	return out
}
