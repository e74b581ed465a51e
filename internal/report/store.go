package report

import "sync"

// Store owns the live report document for one editing session. All mutation
// operations are synchronous and immediately observable; a targeted operation
// whose ID does not exist in the named chapter is a silent no-op reported by
// the boolean return.
type Store struct {
	mu  sync.Mutex
	doc Document
}

func NewStore(doc Document) *Store {
	return &Store{doc: doc}
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// UpdateOverviewField sets one of the fixed overview fields. Unknown field
// names are rejected.
func (s *Store) UpdateOverviewField(field, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case FieldDate:
		s.doc.Overview.Date = value
	case FieldClientInfo:
		s.doc.Overview.ClientInfo = value
	case FieldPurpose:
		s.doc.Overview.Purpose = value
	case FieldWorkers:
		s.doc.Overview.Workers = value
	case FieldLocation:
		s.doc.Overview.Location = value
	default:
		return false
	}
	return true
}

// AddParentTask appends an empty parent task to the chapter and returns it.
func (s *Store) AddParentTask(ch Chapter) (ParentTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validChapter(ch) {
		return ParentTask{}, false
	}
	task := ParentTask{ID: newID(), Subtasks: []Subtask{}}
	s.doc.setTasks(ch, append(s.doc.Tasks(ch), task))
	return task, true
}

// RemoveParentTask splices the task out of the chapter's sequence.
func (s *Store) RemoveParentTask(ch Chapter, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.doc.Tasks(ch)
	for i := range tasks {
		if tasks[i].ID == id {
			s.doc.setTasks(ch, append(tasks[:i:i], tasks[i+1:]...))
			return true
		}
	}
	return false
}

// UpdateParentTask sets the title or description of a task in the chapter.
func (s *Store) UpdateParentTask(ch Chapter, id, field, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.doc.Tasks(ch)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		switch field {
		case "title":
			tasks[i].Title = value
		case "description":
			tasks[i].Description = value
		default:
			return false
		}
		return true
	}
	return false
}

// AddSubtask appends an empty subtask to the named parent and returns it.
func (s *Store) AddSubtask(ch Chapter, parentID string) (Subtask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.findParent(ch, parentID)
	if parent == nil {
		return Subtask{}, false
	}
	st := Subtask{
		ID:           newID(),
		Measurements: []Measurement{},
		Parts:        []Part{},
		Images:       []Image{},
	}
	parent.Subtasks = append(parent.Subtasks, st)
	return st, true
}

// RemoveSubtask splices the subtask out of the named parent.
func (s *Store) RemoveSubtask(ch Chapter, parentID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.findParent(ch, parentID)
	if parent == nil {
		return false
	}
	for i := range parent.Subtasks {
		if parent.Subtasks[i].ID == id {
			parent.Subtasks = append(parent.Subtasks[:i:i], parent.Subtasks[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateSubtask sets the title or description of a subtask.
func (s *Store) UpdateSubtask(ch Chapter, parentID, id, field, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, id)
	if st == nil {
		return false
	}
	switch field {
	case "title":
		st.Title = value
	case "description":
		st.Description = value
	default:
		return false
	}
	return true
}

// DuplicateSubtask deep-copies the named subtask, minting fresh identifiers
// for the copy and every nested measurement, part and image, and inserts the
// copy immediately after the original.
func (s *Store) DuplicateSubtask(ch Chapter, parentID, id string) (Subtask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := s.findParent(ch, parentID)
	if parent == nil {
		return Subtask{}, false
	}
	for i := range parent.Subtasks {
		if parent.Subtasks[i].ID != id {
			continue
		}
		dup := cloneSubtask(parent.Subtasks[i], true)
		parent.Subtasks = append(parent.Subtasks, Subtask{})
		copy(parent.Subtasks[i+2:], parent.Subtasks[i+1:])
		parent.Subtasks[i+1] = dup
		return dup, true
	}
	return Subtask{}, false
}

// AddMeasurement appends a measurement to a subtask and returns it.
func (s *Store) AddMeasurement(ch Chapter, parentID, subtaskID string, m Measurement) (Measurement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return Measurement{}, false
	}
	m.ID = newID()
	st.Measurements = append(st.Measurements, m)
	return m, true
}

// RemoveMeasurement splices a measurement out of a subtask.
func (s *Store) RemoveMeasurement(ch Chapter, parentID, subtaskID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return false
	}
	for i := range st.Measurements {
		if st.Measurements[i].ID == id {
			st.Measurements = append(st.Measurements[:i:i], st.Measurements[i+1:]...)
			return true
		}
	}
	return false
}

// AddParts appends part records to a subtask, minting an ID for any part
// that arrives without one (extraction results carry no identifiers).
func (s *Store) AddParts(ch Chapter, parentID, subtaskID string, parts []Part) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return false
	}
	for _, p := range parts {
		if p.ID == "" {
			p.ID = newID()
		}
		st.Parts = append(st.Parts, p)
	}
	return true
}

// RemovePart splices a part out of a subtask.
func (s *Store) RemovePart(ch Chapter, parentID, subtaskID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return false
	}
	for i := range st.Parts {
		if st.Parts[i].ID == id {
			st.Parts = append(st.Parts[:i:i], st.Parts[i+1:]...)
			return true
		}
	}
	return false
}

// AddImage attaches an image to a subtask and returns it.
func (s *Store) AddImage(ch Chapter, parentID, subtaskID string, caption string, data []byte) (Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return Image{}, false
	}
	img := Image{ID: newID(), Caption: caption, Data: data}
	st.Images = append(st.Images, img)
	return img, true
}

// RemoveImage splices an image out of a subtask.
func (s *Store) RemoveImage(ch Chapter, parentID, subtaskID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.findSubtask(ch, parentID, subtaskID)
	if st == nil {
		return false
	}
	for i := range st.Images {
		if st.Images[i].ID == id {
			st.Images = append(st.Images[:i:i], st.Images[i+1:]...)
			return true
		}
	}
	return false
}

// findParent locates a parent task within one chapter only. Lookups never
// cross into another chapter: a valid ID paired with the wrong chapter is
// treated as not found.
func (s *Store) findParent(ch Chapter, parentID string) *ParentTask {
	tasks := s.doc.Tasks(ch)
	for i := range tasks {
		if tasks[i].ID == parentID {
			return &tasks[i]
		}
	}
	return nil
}

func (s *Store) findSubtask(ch Chapter, parentID, id string) *Subtask {
	parent := s.findParent(ch, parentID)
	if parent == nil {
		return nil
	}
	for i := range parent.Subtasks {
		if parent.Subtasks[i].ID == id {
			return &parent.Subtasks[i]
		}
	}
	return nil
}

func validChapter(ch Chapter) bool {
	switch ch {
	case ChapterInspection, ChapterAbnormality, ChapterVerification:
		return true
	}
	return false
}
