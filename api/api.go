// Package api exposes the note service over HTTP. Routing, body
// decoding, and status mapping live here; all graph semantics stay in
// the store.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notelink/notes"
	"notelink/store"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	svc      *notes.Service
	log      *slog.Logger
	version  string
	readOnly bool
}

// New creates an API server over the note service.
func New(svc *notes.Service, log *slog.Logger, version string, readOnly bool) *Server {
	return &Server{svc: svc, log: log, version: version, readOnly: readOnly}
}

// Router builds the chi router with the full REST surface. Mutating
// routes are not registered in read-only mode. limit may be nil to
// disable throttling (used by tests).
func (s *Server) Router(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if limit != nil {
		r.Use(limit)
	}

	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.Search)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.ListNotes)
			r.Get("/{id}", s.GetNote)
			r.Get("/{id}/backlinks", s.GetBacklinks)
			if !s.readOnly {
				r.Post("/", s.CreateNote)
				r.Put("/{id}", s.UpdateNote)
				r.Delete("/{id}", s.DeleteNote)
			}
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.ListTemplates)
			r.Get("/{id}", s.GetTemplate)
			if !s.readOnly {
				r.Post("/", s.CreateTemplate)
				r.Put("/{id}", s.UpdateTemplate)
				r.Delete("/{id}", s.DeleteTemplate)
			}
		})
	})

	return r
}

// --- Notes ---

func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	var in notes.CreateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := s.svc.CreateNote(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, n)
}

func (s *Server) GetNote(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Note(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, n)
}

func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Notes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, all)
}

func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var in notes.UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := s.svc.UpdateNote(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, n)
}

func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetBacklinks(w http.ResponseWriter, r *http.Request) {
	back, err := s.svc.Backlinks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, back)
}

// --- Templates ---

func (s *Server) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var in notes.CreateTemplateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.svc.CreateTemplate(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Template(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Templates(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, all)
}

func (s *Server) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var in notes.UpdateTemplateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.svc.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Search / health ---

func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	results, err := s.svc.SearchNotes(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Overview(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"readOnly": s.readOnly,
		"stats":    stats,
	})
}

// --- Helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// writeError maps service errors to status codes: NotFound and
// validation failures are caller-facing; everything else is an
// infrastructure fault.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeErrorMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalid):
		s.writeErrorMsg(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("internal error", "error", err)
		s.writeErrorMsg(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
