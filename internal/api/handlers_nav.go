package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/fieldreport/internal/nav"
)

func (s *Server) handleNavState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	state := s.nav.Snapshot()
	trail := nav.Breadcrumbs(s.store.Snapshot(), state.ActiveSectionID)
	writeJSON(w, http.StatusOK, map[string][]string{"breadcrumbs": trail})
}

func (s *Server) handleFilteredTasks(w http.ResponseWriter, r *http.Request) {
	ch, err := chapterParam(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tasks := s.nav.FilteredTasks(s.store.Snapshot(), ch)
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	s.nav.ToggleSidebar()
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleSetViewMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode" validate:"required,oneof=tree breadcrumbs"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.nav.SetViewMode(nav.ViewMode(req.Mode))
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleSetActiveSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.nav.SetActiveSection(req.ID)
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	s.nav.ToggleSection(chi.URLParam(r, "sectionID"))
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleExpandAll(w http.ResponseWriter, r *http.Request) {
	s.nav.ExpandAll(nav.ExpandableIDs(s.store.Snapshot()))
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request) {
	s.nav.CollapseAll()
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleSetFilterMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode" validate:"required,oneof=all incomplete"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.nav.SetFilterMode(nav.FilterMode(req.Mode))
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}

func (s *Server) handleToggleFocus(w http.ResponseWriter, r *http.Request) {
	s.nav.ToggleFocusMode()
	writeJSON(w, http.StatusOK, s.nav.Snapshot())
}
