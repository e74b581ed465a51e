package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/fieldreport/internal/auth"
	"github.com/dgallion1/fieldreport/internal/wizard"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	token, user, err := s.sessions.Login(req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			jsonError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	s.sessions.Logout(trimBearer(header))
	w.WriteHeader(http.StatusNoContent)
}

func trimBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Clients())
}

func (s *Server) handleListFactories(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if _, ok := s.catalog.Client(clientID); !ok {
		jsonError(w, "client not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.FactoriesOf(clientID))
}

func (s *Server) handleListMachines(w http.ResponseWriter, r *http.Request) {
	factoryID := chi.URLParam(r, "factoryID")
	if _, ok := s.catalog.Factory(factoryID); !ok {
		jsonError(w, "factory not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.MachinesOf(factoryID))
}

func (s *Server) handleListManufacturers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Manufacturers())
}

func (s *Server) handleWizardState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"step": s.wizard.Step()})
}

func (s *Server) handleWizardStart(w http.ResponseWriter, r *http.Request) {
	s.wizard.Start()
	writeJSON(w, http.StatusOK, map[string]int{"step": s.wizard.Step()})
}

func (s *Server) handleWizardSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind    string `json:"kind" validate:"required,oneof=client factory machine"`
		ID      string `json:"id"`
		NewName string `json:"newName"`
	}
	if err := s.decodeValid(r, &req); err != nil {
		jsonError(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	switch req.Kind {
	case "client":
		s.wizard.SelectClient(req.ID, req.NewName)
	case "factory":
		s.wizard.SelectFactory(req.ID, req.NewName)
	case "machine":
		s.wizard.SelectMachine(req.ID, req.NewName)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	reportID, err := s.wizard.Next()
	if err != nil {
		if errors.Is(err, wizard.ErrIncompleteStep) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := map[string]any{"step": s.wizard.Step()}
	if reportID != "" {
		resp["reportId"] = reportID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	s.wizard.Back()
	writeJSON(w, http.StatusOK, map[string]int{"step": s.wizard.Step()})
}

func (s *Server) handleWizardClose(w http.ResponseWriter, r *http.Request) {
	s.wizard.Close()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" || r.URL.Query().Has("q") {
		s.reports.SetSearchQuery(q)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s.reports.SetStatusFilter(status)
	}
	writeJSON(w, http.StatusOK, s.reports.List())
}

func (s *Server) handleDuplicateReport(w http.ResponseWriter, r *http.Request) {
	cp, ok := s.reports.Duplicate(chi.URLParam(r, "reportID"))
	if !ok {
		jsonError(w, "report not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, cp)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if !s.reports.Delete(chi.URLParam(r, "reportID")) {
		jsonError(w, "report not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
