package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/go-chi/chi/v5"
)

type submitApplicationRequest struct {
	ChildName   string `json:"child_name"`
	DateOfBirth string `json:"date_of_birth"`
}

type updateApplicationRequest struct {
	Status         *string `json:"status,omitempty"`
	InterviewDate  *string `json:"interview_date,omitempty"`
	ClearInterview bool    `json:"clear_interview,omitempty"`
	InterviewNotes *string `json:"interview_notes,omitempty"`
	AdminNotes     *string `json:"admin_notes,omitempty"`
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	var req submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := s.apps.Submit(r.Context(), principal, application.SubmitRequest{
		ChildName:   req.ChildName,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	apps, err := s.apps.ListAll(r.Context(), principal)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	apps, err := s.apps.ListMine(r.Context(), principal)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	app, err := s.apps.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	var req updateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := application.StatusUpdate{
		ClearInterview: req.ClearInterview,
		InterviewNotes: req.InterviewNotes,
		AdminNotes:     req.AdminNotes,
	}
	if req.Status != nil {
		status := application.Status(*req.Status)
		upd.Status = &status
	}
	if req.InterviewDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.InterviewDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid interview_date")
			return
		}
		upd.InterviewDate = &parsed
	}

	app, err := s.apps.SetStatus(r.Context(), principal, chi.URLParam(r, "id"), upd)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	opts := audit.ListOptions{}
	q := r.URL.Query()
	if id := q.Get("application_id"); id != "" {
		opts.ApplicationID = &id
	}
	if id := q.Get("slot_id"); id != "" {
		opts.SlotID = &id
	}
	if raw := q.Get("type"); raw != "" {
		eventType := audit.EventType(raw)
		opts.EventType = &eventType
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			opts.Offset = offset
		}
	}

	entries, err := s.audits.Recent(r.Context(), principal, opts)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
