package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/fieldreport/internal/review"
)

func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": s.review.Suggestions(),
		"reviewing":   s.review.Reviewing(),
		"polishing":   s.review.Polishing(),
		"polishLevel": s.review.PolishLevel(),
	})
}

func (s *Server) handleSuggestionCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.review.Counts())
}

func (s *Server) handleTriggerReview(w http.ResponseWriter, r *http.Request) {
	if _, err := s.review.TriggerReview(); err != nil {
		if errors.Is(err, review.ErrBusy) {
			jsonError(w, "review already running", http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reviewing"})
}

func (s *Server) handleTriggerPolish(w http.ResponseWriter, r *http.Request) {
	if _, err := s.review.TriggerPolish(); err != nil {
		if errors.Is(err, review.ErrBusy) {
			jsonError(w, "polish already running", http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "polishing"})
}

func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	if !s.review.Apply(chi.URLParam(r, "suggestionID")) {
		jsonError(w, "suggestion not applicable", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.review.Counts())
}

func (s *Server) handleDismissSuggestion(w http.ResponseWriter, r *http.Request) {
	if !s.review.Dismiss(chi.URLParam(r, "suggestionID")) {
		jsonError(w, "suggestion not dismissable", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, s.review.Counts())
}
