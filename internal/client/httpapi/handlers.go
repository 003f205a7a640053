package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/client/tasks"
)

type publishResponse struct {
	ID      string `json:"id"`
	Local   bool   `json:"local"`
	Message string `json:"message"`
}

type toggleResponse struct {
	ID    string `json:"id"`
	State bool   `json:"state"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug(r.Context(), "request rejected", "path", r.URL.Path, "error", err)
	}
	respondError(w, status, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"mode":   string(s.status.Mode()),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.ListCatalog(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetBlueprint(w http.ResponseWriter, r *http.Request) {
	bp, err := s.catalog.Blueprint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bp)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	d := models.NewDraft()
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondError(w, http.StatusBadRequest, apiError{Code: CodeBadRequest, Message: "invalid draft: " + err.Error()})
		return
	}

	id, err := s.catalog.Publish(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := publishResponse{ID: id, Local: models.IsLocalID(id), Message: "published"}
	if resp.Local {
		resp.Message = "saved locally, will sync later"
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	report, err := s.catalog.Sync(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	failed := make(map[string]string, len(report.Failed))
	for _, f := range report.Failed {
		failed[f.LocalID] = f.Err.Error()
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"synced":  report.Synced,
		"failed":  failed,
		"skipped": report.Skipped,
	})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.interactions.Purchase(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{ID: id, State: true})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	liked, err := s.interactions.ToggleLike(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{ID: id, State: liked})
}

func (s *Server) parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := tasks.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, apiError{Code: CodeBadRequest, Message: err.Error()})
		return time.Time{}, false
	}
	return date, true
}

func (s *Server) handleCalendarDay(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}

	day, err := s.calendar.Day(r.Context(), date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "taskID")
	done, err := s.calendar.Toggle(r.Context(), date, taskID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{ID: taskID, State: done})
}

func (s *Server) handleToggleBlueprint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	enabled, err := s.calendar.ToggleBlueprint(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleResponse{ID: id, State: enabled})
}

var _ Calendar = (*services.Calendar)(nil)
var _ Catalog = (*services.Coordinator)(nil)
var _ Interactions = (*services.Interactions)(nil)
