// Package nav tracks UI-level view state keyed by node identifiers from the
// report document tree. Identifiers are weak references: they are resolved
// against the current document on read and simply resolve to nothing when
// their target has been deleted.
package nav

import (
	"sort"
	"sync"
)

type ViewMode string

const (
	ViewTree        ViewMode = "tree"
	ViewBreadcrumbs ViewMode = "breadcrumbs"
)

type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterIncomplete FilterMode = "incomplete"
)

// State is a read-only copy of the engine's view state.
type State struct {
	SidebarOpen      bool       `json:"sidebarOpen"`
	ViewMode         ViewMode   `json:"viewMode"`
	ActiveSectionID  string     `json:"activeSectionId,omitempty"`
	ExpandedSections []string   `json:"expandedSections"`
	FilterMode       FilterMode `json:"filterMode"`
	FocusMode        bool       `json:"focusMode"`
}

// Engine owns navigation state for one editing session. It never mutates the
// document; it only references its shape by ID.
type Engine struct {
	mu          sync.Mutex
	sidebarOpen bool
	viewMode    ViewMode
	active      string
	expanded    map[string]struct{}
	filterMode  FilterMode
	focusMode   bool
}

func NewEngine() *Engine {
	return &Engine{
		sidebarOpen: true,
		viewMode:    ViewTree,
		expanded:    make(map[string]struct{}),
		filterMode:  FilterAll,
	}
}

func (e *Engine) ToggleSidebar() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sidebarOpen = !e.sidebarOpen
}

func (e *Engine) SetSidebarOpen(open bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sidebarOpen = open
}

func (e *Engine) SetViewMode(mode ViewMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewMode = mode
}

// SetActiveSection records the active node. An empty ID clears it.
func (e *Engine) SetActiveSection(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = id
}

// ToggleSection flips the expanded state of one node.
func (e *Engine) ToggleSection(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.expanded[id]; ok {
		delete(e.expanded, id)
	} else {
		e.expanded[id] = struct{}{}
	}
}

func (e *Engine) SetExpanded(id string, expanded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if expanded {
		e.expanded[id] = struct{}{}
	} else {
		delete(e.expanded, id)
	}
}

// ExpandAll replaces the expanded set with exactly the given IDs.
func (e *Engine) ExpandAll(ids []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expanded = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		e.expanded[id] = struct{}{}
	}
}

func (e *Engine) CollapseAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expanded = make(map[string]struct{})
}

func (e *Engine) SetFilterMode(mode FilterMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filterMode = mode
}

func (e *Engine) ToggleFocusMode() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focusMode = !e.focusMode
}

// Snapshot returns a copy of the current state. Expanded IDs are sorted so
// callers see a stable order.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	expanded := make([]string, 0, len(e.expanded))
	for id := range e.expanded {
		expanded = append(expanded, id)
	}
	sort.Strings(expanded)
	return State{
		SidebarOpen:      e.sidebarOpen,
		ViewMode:         e.viewMode,
		ActiveSectionID:  e.active,
		ExpandedSections: expanded,
		FilterMode:       e.filterMode,
		FocusMode:        e.focusMode,
	}
}
