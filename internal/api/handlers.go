package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatescan/internal/locate"
	"gatescan/internal/selector"
)

type createSessionRequest struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

type resolveRequest struct {
	Selector string `json:"selector"`
	// Kind is "structural" (default) or "literal".
	Kind string `json:"kind"`
}

type resolveResponse struct {
	Found bool `json:"found"`
	Line  int  `json:"line"`
	Depth int  `json:"depth"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := s.sessions.Create(req.Path, req.Text)
	s.log.Info("session created", "session", id, "path", req.Path)
	writeJSON(w, http.StatusCreated, createSessionResponse{ID: id})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var sel selector.Selector
	switch req.Kind {
	case "literal":
		sel = selector.Literal(req.Selector)
	case "", "structural":
		sel = selector.Structural(req.Selector)
	default:
		writeError(w, http.StatusBadRequest, "kind must be structural or literal")
		return
	}

	res, ok := s.sessions.Resolve(id, sel)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	// A miss is a value, not an error: the editor surfaces it as
	// "<selector> not found!".
	writeJSON(w, http.StatusOK, resolveResponse{
		Found: res.Line != locate.NotFound,
		Line:  res.Line,
		Depth: res.Depth,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.Reset(id) {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
