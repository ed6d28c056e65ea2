package transport

import (
	"encoding/json"
	"net/http"

	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/go-chi/chi/v5"
)

type createSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type bookSlotRequest struct {
	ApplicationID string `json:"application_id"`
}

type okBody struct {
	OK bool `json:"ok"`
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	opts := slot.ListOptions{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if principal.Admin {
		views, err := s.slots.ListForStaff(r.Context(), principal, opts)
		if err != nil {
			respondError(w, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	views, err := s.slots.ListAvailability(r.Context(), opts)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	var req createSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.slots.Create(r.Context(), principal, slot.CreateRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	if err := s.slots.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (s *Server) handleReleaseSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	if err := s.slots.Release(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

func (s *Server) handleBookSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.principal(w, r)
	if !ok {
		return
	}

	var req bookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.bookings.Book(r.Context(), principal, req.ApplicationID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
