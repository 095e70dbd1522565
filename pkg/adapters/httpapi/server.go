// Package httpapi exposes the walkthrough engine over a JSON HTTP API, the
// surface the web front end talks to.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/permitpath/permitpath/internal/logging"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/fees"
	"github.com/permitpath/permitpath/pkg/jurisdiction"
	"github.com/permitpath/permitpath/pkg/ports"
	"github.com/permitpath/permitpath/pkg/session"
)

// Server wires the session manager and static data providers into handlers.
type Server struct {
	sessions  *session.Manager
	source    ports.TreeSource
	schedule  *fees.Schedule
	directory *jurisdiction.Directory
	logger    *slog.Logger
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithFeeSchedule enables the fee estimation endpoint.
func WithFeeSchedule(s *fees.Schedule) ServerOption {
	return func(srv *Server) {
		srv.schedule = s
	}
}

// WithDirectory enables the jurisdiction directory endpoint.
func WithDirectory(d *jurisdiction.Directory) ServerOption {
	return func(srv *Server) {
		srv.directory = d
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(srv *Server) {
		srv.logger = logger
	}
}

// NewHandler builds the HTTP handler for the walkthrough API.
func NewHandler(sessions *session.Manager, source ports.TreeSource, opts ...ServerOption) http.Handler {
	srv := &Server{
		sessions: sessions,
		source:   source,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)

	r.Get("/healthz", srv.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/trees", srv.listTrees)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", srv.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/next", srv.nextQuestion)
			r.Post("/answers", srv.answerQuestion)
			r.Post("/rewind", srv.rewindSession)
			r.Get("/review", srv.reviewSession)
			r.Get("/summary", srv.summarizeSession)
			r.Delete("/", srv.deleteSession)
		})
	})

	r.Get("/fees/estimate", srv.estimateFee)
	r.Get("/jurisdictions/{jurisdictionID}", srv.getOffice)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTrees(w http.ResponseWriter, r *http.Request) {
	types, err := s.source.List()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to list trees", err)
		return
	}
	writeJSON(w, http.StatusOK, treesResponse{ProjectTypes: types})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id, prompt, err := s.sessions.Create(r.Context(), body.ProjectType)
	if err != nil {
		if errors.Is(err, domain.ErrTreeNotFound) {
			s.fail(w, http.StatusNotFound, "unknown project type", err)
			return
		}
		s.fail(w, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	sessionsCreated.Inc()
	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: id,
		Next:      promptDTO(prompt),
	})
}

func (s *Server) nextQuestion(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.sessions.Next(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.failSession(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nextResponse{Next: promptDTO(prompt), Done: prompt == nil})
}

func (s *Server) answerQuestion(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	prompt, validation, err := s.sessions.Answer(r.Context(), chi.URLParam(r, "sessionID"), body.QuestionID, body.Answer)
	if err != nil {
		s.failSession(w, err)
		return
	}
	if !validation.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, answerResponse{Validation: validation})
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Validation: validation,
		Next:       promptDTO(prompt),
		Done:       prompt == nil,
	})
}

func (s *Server) rewindSession(w http.ResponseWriter, r *http.Request) {
	var body rewindRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	prompt, err := s.sessions.Rewind(r.Context(), chi.URLParam(r, "sessionID"), body.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotInHistory) {
			s.fail(w, http.StatusConflict, "Question not found in history", err)
			return
		}
		s.failSession(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nextResponse{Next: promptDTO(prompt), Done: prompt == nil})
}

func (s *Server) reviewSession(w http.ResponseWriter, r *http.Request) {
	items, err := s.sessions.Review(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.failSession(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewResponse{Items: items})
}

func (s *Server) summarizeSession(w http.ResponseWriter, r *http.Request) {
	summary, err := s.sessions.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.failSession(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.failSession(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) estimateFee(w http.ResponseWriter, r *http.Request) {
	if s.schedule == nil {
		s.fail(w, http.StatusNotFound, "fee schedule not configured", nil)
		return
	}

	q := r.URL.Query()
	valuation := 0.0
	if raw := q.Get("valuation"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.fail(w, http.StatusBadRequest, "invalid valuation", err)
			return
		}
		valuation = v
	}

	est, err := s.schedule.Estimate(q.Get("jurisdiction"), q.Get("project_type"), valuation)
	if err != nil {
		s.fail(w, http.StatusNotFound, "no fee rule", err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *Server) getOffice(w http.ResponseWriter, r *http.Request) {
	if s.directory == nil {
		s.fail(w, http.StatusNotFound, "jurisdiction directory not configured", nil)
		return
	}

	office, err := s.directory.Get(chi.URLParam(r, "jurisdictionID"))
	if err != nil {
		s.fail(w, http.StatusNotFound, "unknown jurisdiction", err)
		return
	}
	writeJSON(w, http.StatusOK, office)
}

// failSession maps store/engine errors to status codes.
func (s *Server) failSession(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.fail(w, http.StatusNotFound, "session not found", err)
		return
	}
	s.fail(w, http.StatusInternalServerError, "internal error", err)
}

func (s *Server) fail(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= 500 {
		s.logger.Error("request failed", "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
