package report

import (
	"reflect"
	"testing"
)

func seededStore(t *testing.T) (*Store, ParentTask, Subtask) {
	t.Helper()
	s := NewStore(NewDocument("Acme Corp"))
	parent, ok := s.AddParentTask(ChapterInspection)
	if !ok {
		t.Fatal("expected AddParentTask to succeed")
	}
	s.UpdateParentTask(ChapterInspection, parent.ID, "title", "Pump Check")
	st, ok := s.AddSubtask(ChapterInspection, parent.ID)
	if !ok {
		t.Fatal("expected AddSubtask to succeed")
	}
	s.UpdateSubtask(ChapterInspection, parent.ID, st.ID, "title", "Check Seal")
	return s, parent, st
}

func TestStore_UpdateOverviewField(t *testing.T) {
	s := NewStore(NewDocument("Acme Corp"))
	if !s.UpdateOverviewField(FieldPurpose, "Quarterly maintenance") {
		t.Fatal("expected known field to succeed")
	}
	if got := s.Snapshot().Overview.Purpose; got != "Quarterly maintenance" {
		t.Errorf("expected purpose to be set, got %q", got)
	}
	if s.UpdateOverviewField("nonsense", "x") {
		t.Error("expected unknown field to be rejected")
	}
}

func TestStore_AddParentTask_UnknownChapter(t *testing.T) {
	s := NewStore(NewDocument(""))
	if _, ok := s.AddParentTask(Chapter("bogus")); ok {
		t.Error("expected unknown chapter to be rejected")
	}
}

func TestStore_RemoveParentTask(t *testing.T) {
	s, parent, _ := seededStore(t)
	if !s.RemoveParentTask(ChapterInspection, parent.ID) {
		t.Fatal("expected removal to succeed")
	}
	if n := len(s.Snapshot().InspectionTasks); n != 0 {
		t.Errorf("expected 0 tasks after removal, got %d", n)
	}
}

func TestStore_NotFoundIsNoOp(t *testing.T) {
	s, parent, st := seededStore(t)
	before := s.Snapshot()

	if s.RemoveParentTask(ChapterInspection, "missing") {
		t.Error("expected remove of missing parent to report not found")
	}
	// Valid ID paired with the wrong chapter must not touch the other chapter.
	if s.RemoveParentTask(ChapterAbnormality, parent.ID) {
		t.Error("expected cross-chapter remove to report not found")
	}
	if s.UpdateParentTask(ChapterVerification, parent.ID, "title", "X") {
		t.Error("expected cross-chapter update to report not found")
	}
	if s.UpdateSubtask(ChapterInspection, parent.ID, "missing", "title", "X") {
		t.Error("expected update of missing subtask to report not found")
	}
	if s.RemoveSubtask(ChapterInspection, "missing", st.ID) {
		t.Error("expected remove under missing parent to report not found")
	}
	if _, ok := s.DuplicateSubtask(ChapterInspection, parent.ID, "missing"); ok {
		t.Error("expected duplicate of missing subtask to report not found")
	}

	after := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("expected document to be unchanged after not-found operations")
	}
}

func TestStore_DuplicateSubtask(t *testing.T) {
	s, parent, st := seededStore(t)
	s.UpdateSubtask(ChapterInspection, parent.ID, st.ID, "description", "torque to spec")
	s.AddMeasurement(ChapterInspection, parent.ID, st.ID, Measurement{Label: "Pressure", Value: "2.1", Unit: "MPa"})
	s.AddParts(ChapterInspection, parent.ID, st.ID, []Part{{Name: "Seal Kit", Quantity: 2, Extra: map[string]string{"model": "SK-20"}}})
	s.AddImage(ChapterInspection, parent.ID, st.ID, "before", []byte{0x01})

	dup, ok := s.DuplicateSubtask(ChapterInspection, parent.ID, st.ID)
	if !ok {
		t.Fatal("expected duplication to succeed")
	}

	doc := s.Snapshot()
	subs := doc.InspectionTasks[0].Subtasks
	if len(subs) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(subs))
	}
	// Inserted immediately after the original.
	if subs[0].ID != st.ID || subs[1].ID != dup.ID {
		t.Errorf("expected copy right after original, got order %q, %q", subs[0].ID, subs[1].ID)
	}

	orig, cp := subs[0], subs[1]
	if cp.Title != orig.Title || cp.Description != orig.Description {
		t.Error("expected copy to carry identical field values")
	}
	if cp.Measurements[0].Label != "Pressure" || cp.Parts[0].Name != "Seal Kit" || cp.Images[0].Caption != "before" {
		t.Error("expected nested contents to be copied")
	}
	if cp.Parts[0].Extra["model"] != "SK-20" {
		t.Error("expected open part attributes to be copied")
	}

	// Disjoint identifiers at every level.
	if cp.ID == orig.ID ||
		cp.Measurements[0].ID == orig.Measurements[0].ID ||
		cp.Parts[0].ID == orig.Parts[0].ID ||
		cp.Images[0].ID == orig.Images[0].ID {
		t.Error("expected fresh identifiers for copy and all nested entities")
	}

	// Mutating a snapshot's open attributes must not alias the store.
	doc2 := s.Snapshot()
	doc2.InspectionTasks[0].Subtasks[1].Parts[0].Extra["model"] = "changed"
	if s.Snapshot().InspectionTasks[0].Subtasks[0].Parts[0].Extra["model"] != "SK-20" {
		t.Error("expected snapshot mutation not to leak into the store")
	}
}

func TestStore_GlobalIDUniqueness(t *testing.T) {
	s := NewStore(NewDocument(""))
	for _, ch := range Chapters {
		for range 3 {
			p, _ := s.AddParentTask(ch)
			for range 2 {
				st, _ := s.AddSubtask(ch, p.ID)
				s.AddMeasurement(ch, p.ID, st.ID, Measurement{Label: "L"})
				s.AddParts(ch, p.ID, st.ID, []Part{{Name: "N", Quantity: 1}})
				s.AddImage(ch, p.ID, st.ID, "c", nil)
				s.DuplicateSubtask(ch, p.ID, st.ID)
			}
		}
	}
	doc := s.Snapshot()
	seen := make(map[string]bool)
	for _, id := range doc.AllIDs() {
		if id == "" {
			t.Fatal("found empty entity ID")
		}
		if seen[id] {
			t.Fatalf("duplicate entity ID %q", id)
		}
		seen[id] = true
	}
}

func TestStore_LeafRecordOps(t *testing.T) {
	s, parent, st := seededStore(t)

	m, ok := s.AddMeasurement(ChapterInspection, parent.ID, st.ID, Measurement{Label: "Temp", Value: "40", Unit: "C"})
	if !ok || m.ID == "" {
		t.Fatal("expected measurement to be added with an ID")
	}
	if !s.RemoveMeasurement(ChapterInspection, parent.ID, st.ID, m.ID) {
		t.Error("expected measurement removal to succeed")
	}

	if !s.AddParts(ChapterInspection, parent.ID, st.ID, []Part{{Name: "Belt", Quantity: 1}}) {
		t.Fatal("expected parts to be added")
	}
	partID := s.Snapshot().InspectionTasks[0].Subtasks[0].Parts[0].ID
	if partID == "" {
		t.Fatal("expected imported part to be assigned an ID")
	}
	if !s.RemovePart(ChapterInspection, parent.ID, st.ID, partID) {
		t.Error("expected part removal to succeed")
	}

	img, ok := s.AddImage(ChapterInspection, parent.ID, st.ID, "after", []byte{0x02})
	if !ok {
		t.Fatal("expected image to be added")
	}
	if !s.RemoveImage(ChapterInspection, parent.ID, st.ID, img.ID) {
		t.Error("expected image removal to succeed")
	}

	if got := s.Snapshot().InspectionTasks[0].Subtasks[0]; len(got.Measurements) != 0 || len(got.Parts) != 0 || len(got.Images) != 0 {
		t.Error("expected all leaf records removed")
	}
}

func TestStore_ApplyText(t *testing.T) {
	s, parent, st := seededStore(t)

	if !s.ApplyText(TargetRef{Field: FieldPurpose}, "polished purpose") {
		t.Error("expected overview target to apply")
	}
	if !s.ApplyText(TargetRef{Chapter: ChapterInspection, ParentID: parent.ID, Field: "title"}, "Pump Inspection") {
		t.Error("expected parent target to apply")
	}
	if !s.ApplyText(TargetRef{Chapter: ChapterInspection, ParentID: parent.ID, SubtaskID: st.ID, Field: "description"}, "replaced") {
		t.Error("expected subtask target to apply")
	}
	if s.ApplyText(TargetRef{Chapter: ChapterInspection, ParentID: "missing", Field: "title"}, "x") {
		t.Error("expected dangling target to report not found")
	}

	doc := s.Snapshot()
	if doc.Overview.Purpose != "polished purpose" ||
		doc.InspectionTasks[0].Title != "Pump Inspection" ||
		doc.InspectionTasks[0].Subtasks[0].Description != "replaced" {
		t.Error("expected applied text to be visible in snapshot")
	}
}

func TestDocument_ReadText(t *testing.T) {
	s, parent, st := seededStore(t)
	doc := s.Snapshot()

	got, ok := doc.ReadText(TargetRef{Chapter: ChapterInspection, ParentID: parent.ID, SubtaskID: st.ID, Field: "title"})
	if !ok || got != "Check Seal" {
		t.Errorf("expected subtask title %q, got %q (ok=%v)", "Check Seal", got, ok)
	}
	if _, ok := doc.ReadText(TargetRef{Chapter: ChapterInspection, ParentID: "missing", Field: "title"}); ok {
		t.Error("expected dangling read to report not found")
	}
}

func TestDocument_ChapterOf(t *testing.T) {
	s, parent, st := seededStore(t)
	doc := s.Snapshot()

	cases := []struct {
		id   string
		want string
		ok   bool
	}{
		{OverviewAnchor, OverviewAnchor, true},
		{parent.ID, string(ChapterInspection), true},
		{st.ID, string(ChapterInspection), true},
		{"X9", "", false},
	}
	for _, c := range cases {
		got, ok := doc.ChapterOf(c.id)
		if got != c.want || ok != c.ok {
			t.Errorf("ChapterOf(%q) = %q,%v; want %q,%v", c.id, got, ok, c.want, c.ok)
		}
	}
}
