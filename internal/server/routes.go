package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"labstock/internal/catalog"
	"labstock/internal/engine"
	"labstock/internal/intent"
	"labstock/internal/movement"
	"labstock/internal/snapshot"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/commands", s.handleCommand)
		r.Post("/undo", s.handleUndo)
		r.Get("/items", s.handleListItems)
		r.Get("/items/low", s.handleLowStock)
		r.Get("/items/{id}", s.handleGetItem)
		r.Get("/movements", s.handleListMovements)
	})

	if s.hub != nil {
		r.Get("/ws/alerts", s.hub.HandleWS)
	}
}

type commandRequest struct {
	Text    string `json:"text"`
	Actor   string `json:"actor,omitempty"`
	Session string `json:"session,omitempty"`
}

type undoRequest struct {
	Session string `json:"session,omitempty"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Session == "" {
		req.Session = snapshot.DefaultSession
	}

	out, err := s.engine.Execute(r.Context(), engine.Command{
		Text:    req.Text,
		Actor:   req.Actor,
		Session: req.Session,
	})
	if err != nil {
		// Model-quality failures are a handled outcome, not a transport
		// error: 4xx stays reserved for malformed requests.
		var malformed *intent.MalformedJSONError
		var badAction *intent.InvalidActionError
		var badNumber *intent.InvalidNumberError
		if errors.As(err, &malformed) || errors.As(err, &badAction) || errors.As(err, &badNumber) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req undoRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}
	if req.Session == "" {
		req.Session = snapshot.DefaultSession
	}

	out, err := s.engine.Undo(r.Context(), req.Session)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		writeError(w, http.StatusNotFound, "nothing to undo")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := s.engine.LowStock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := s.store.FindByID(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := movement.ListFilter{ItemID: q.Get("item_id")}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	records, err := s.movements.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
