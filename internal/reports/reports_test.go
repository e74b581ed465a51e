package reports

import (
	"strings"
	"testing"
	"time"
)

func fixedStore() *Store {
	s := NewStore()
	s.now = func() time.Time { return time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestCreate_Defaults(t *testing.T) {
	s := fixedStore()

	id := s.Create(Summary{})
	if !strings.HasPrefix(id, "R-2026-") {
		t.Errorf("id = %q, want R-2026- prefix", id)
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("created report not retrievable")
	}
	if got.Status != StatusDraft {
		t.Errorf("status = %q, want Draft", got.Status)
	}
	if got.Date != "2026-01-05" {
		t.Errorf("date = %q", got.Date)
	}
	if got.Description != "New Report" {
		t.Errorf("description = %q", got.Description)
	}

	// Newest first.
	if list := s.List(); list[0].ID != id {
		t.Errorf("List()[0].ID = %q, want %q", list[0].ID, id)
	}
}

func TestCreate_DerivedDescription(t *testing.T) {
	s := fixedStore()
	id := s.Create(Summary{Client: "Acme Corp", Machine: "Lathe B"})
	got, _ := s.Get(id)
	if got.Description != "Report for Lathe B (Acme Corp)" {
		t.Errorf("description = %q", got.Description)
	}
}

func TestDuplicate(t *testing.T) {
	s := fixedStore()

	cp, ok := s.Duplicate("R-2025-002")
	if !ok {
		t.Fatal("Duplicate() failed for existing id")
	}
	if cp.ID == "R-2025-002" {
		t.Error("duplicate kept the original id")
	}
	if cp.Status != StatusDraft {
		t.Errorf("duplicate status = %q, want Draft", cp.Status)
	}
	if cp.Description != "Emergency Repair - Robot Arm (Copy)" {
		t.Errorf("duplicate description = %q", cp.Description)
	}
	if cp.Client != "Wayne Enterprises" || cp.MachineID != "M-03" {
		t.Errorf("duplicate lost fields: %+v", cp)
	}

	if _, ok := s.Duplicate("R-9999-999"); ok {
		t.Error("Duplicate() succeeded for unknown id")
	}
}

func TestDelete(t *testing.T) {
	s := fixedStore()
	before := len(s.List())

	if !s.Delete("R-2025-001") {
		t.Fatal("Delete() failed for existing id")
	}
	if got := len(s.List()); got != before-1 {
		t.Errorf("List() = %d rows, want %d", got, before-1)
	}
	if s.Delete("R-2025-001") {
		t.Error("Delete() succeeded twice for the same id")
	}
}

func TestList_Filtering(t *testing.T) {
	s := fixedStore()

	s.SetStatusFilter(string(StatusDraft))
	for _, r := range s.List() {
		if r.Status != StatusDraft {
			t.Errorf("filter Draft returned %q", r.Status)
		}
	}

	s.SetStatusFilter(FilterAll)
	s.SetSearchQuery("acme")
	list := s.List()
	if len(list) != 2 {
		t.Fatalf("search acme = %d rows, want 2", len(list))
	}
	for _, r := range list {
		if r.Client != "Acme Corp" {
			t.Errorf("search returned %q", r.Client)
		}
	}

	// Search and status filter combine.
	s.SetStatusFilter(string(StatusFinal))
	if list := s.List(); len(list) != 0 {
		t.Errorf("acme+Final = %d rows, want 0", len(list))
	}

	// Bogus filter resets to All.
	s.SetStatusFilter("Bogus")
	s.SetSearchQuery("")
	if got := len(s.List()); got != 4 {
		t.Errorf("reset filter = %d rows, want 4", got)
	}
}
