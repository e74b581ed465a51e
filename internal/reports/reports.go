// Package reports keeps the report-list view: summaries, search and
// status filtering, create/duplicate/delete.
package reports

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Status is a report's lifecycle stage in the list view.
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusReview Status = "Review"
	StatusFinal  Status = "Final"
)

// FilterAll shows every status.
const FilterAll = "All"

// Summary is one row of the reports list.
type Summary struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	FactoryID   string `json:"factoryId,omitempty"`
	MachineID   string `json:"machineId"`
	Client      string `json:"client"`
	Machine     string `json:"machine"`
	Date        string `json:"date"`
	Status      Status `json:"status"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Store holds the report summaries plus the list view's query state.
type Store struct {
	mu           sync.Mutex
	reports      []Summary
	searchQuery  string
	statusFilter string
	now          func() time.Time
}

// NewStore returns a store seeded with the demo rows.
func NewStore() *Store {
	return &Store{
		reports: []Summary{
			{ID: "R-2025-001", ClientID: "C-001", FactoryID: "F-001", MachineID: "M-01", Client: "Acme Corp", Machine: "Press Machine A", Description: "Quarterly Maintenance - Press A", Date: "2025-10-15", Status: StatusDraft, Author: "Demo Engineer"},
			{ID: "R-2025-002", ClientID: "C-002", FactoryID: "F-004", MachineID: "M-03", Client: "Wayne Enterprises", Machine: "Robot Arm C", Description: "Emergency Repair - Robot Arm", Date: "2025-10-18", Status: StatusReview, Author: "Demo Engineer"},
			{ID: "R-2025-003", ClientID: "C-001", FactoryID: "F-001", MachineID: "M-02", Client: "Acme Corp", Machine: "Lathe B", Description: "Installation Report - Lathe B", Date: "2025-10-20", Status: StatusDraft, Author: "Demo Engineer"},
			{ID: "R-2025-004", ClientID: "C-003", FactoryID: "F-005", MachineID: "M-05", Client: "Cyberdyne Systems", Machine: "Assembly Bot E", Description: "Routine Inspection - Assembly Bot", Date: "2025-10-22", Status: StatusFinal, Author: "Demo Engineer"},
		},
		statusFilter: FilterAll,
		now:          time.Now,
	}
}

func (s *Store) newID() string {
	return fmt.Sprintf("R-%d-%03d", s.now().Year(), rand.Intn(1000))
}

// Create prepends a new draft built from the given seed and returns
// its ID. Zero fields fall back to defaults.
func (s *Store) Create(seed Summary) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed.ID = s.newID()
	if seed.Date == "" {
		seed.Date = s.now().Format("2006-01-02")
	}
	if seed.Status == "" {
		seed.Status = StatusDraft
	}
	if seed.Author == "" {
		seed.Author = "Demo Engineer"
	}
	if seed.Description == "" {
		seed.Description = "New Report"
	}
	if seed.Client != "" && seed.Machine != "" {
		seed.Description = fmt.Sprintf("Report for %s (%s)", seed.Machine, seed.Client)
	}

	s.reports = append([]Summary{seed}, s.reports...)
	return seed.ID
}

// Duplicate copies a report as a fresh draft, prepended to the list.
// Unknown IDs are a no-op.
func (s *Store) Duplicate(id string) (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.ID != id {
			continue
		}
		cp := r
		cp.ID = s.newID()
		cp.Status = StatusDraft
		cp.Date = s.now().Format("2006-01-02")
		cp.Description = r.Description + " (Copy)"
		s.reports = append([]Summary{cp}, s.reports...)
		return cp, true
	}
	return Summary{}, false
}

// Delete removes a report. Unknown IDs are a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reports {
		if r.ID == id {
			s.reports = append(s.reports[:i:i], s.reports[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, true
		}
	}
	return Summary{}, false
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// SetStatusFilter accepts a Status or FilterAll; anything else resets
// to FilterAll.
func (s *Store) SetStatusFilter(f string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch Status(f) {
	case StatusDraft, StatusReview, StatusFinal:
		s.statusFilter = f
	default:
		s.statusFilter = FilterAll
	}
}

// List returns the rows matching the current search query and status
// filter. Search is a case-insensitive match over client, machine and
// description.
func (s *Store) List() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(s.searchQuery))
	out := make([]Summary, 0, len(s.reports))
	for _, r := range s.reports {
		if s.statusFilter != FilterAll && string(r.Status) != s.statusFilter {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r Summary, q string) bool {
	for _, field := range []string{r.Client, r.Machine, r.Description, r.ID} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
