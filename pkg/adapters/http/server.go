// Package http exposes a deck-backed wizard as a JSON API.
//
// Navigation is request-scoped: each call loads the session's committed
// position, replays the navigation on a virtual scheduler (transitions
// settle synchronously, without animation delays), and persists the merged
// position through the session manager.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makebuild-code/slidenav"
	"github.com/makebuild-code/slidenav/internal/logging"
	"github.com/makebuild-code/slidenav/pkg/adapters/virtual"
	"github.com/makebuild-code/slidenav/pkg/deck"
	"github.com/makebuild-code/slidenav/pkg/domain"
	"github.com/makebuild-code/slidenav/pkg/session"
)

// Server handles wizard navigation over HTTP.
type Server struct {
	deck     *deck.Deck
	cfg      domain.Config
	sessions *session.Manager
	logger   *slog.Logger
	hooks    []domain.LifecycleHooks
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithLifecycleHooks forwards engine lifecycle events (e.g. to metrics).
// May be given multiple times; each set is registered separately so a
// misbehaving hook cannot silence the others.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *Server) { s.hooks = append(s.hooks, h) }
}

// NewHandler creates the HTTP handler for a deck.
func NewHandler(d *deck.Deck, sessions *session.Manager, opts ...Option) http.Handler {
	cfg, err := d.Config()
	if err != nil {
		// Deck settings were already validated at load time; fall back to
		// defaults rather than refusing to serve.
		cfg = domain.DefaultConfig()
	}
	// Request-scoped navigation settles synchronously; animation delays
	// would only stretch virtual time.
	cfg.Animate = false

	s := &Server{
		deck:     d,
		cfg:      cfg,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/deck", s.handleDeck)
	r.Get("/sessions", s.handleListSessions)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleDeleteSession)
		r.Post("/navigate", s.handleNavigate)
		r.Post("/reset", s.handleReset)
	})
	return r
}

type slideInfo struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Align string `json:"align,omitempty"`
	Title string `json:"title,omitempty"`
}

type deckResponse struct {
	Title       string      `json:"title,omitempty"`
	TotalSlides int         `json:"total_slides"`
	Slides      []slideInfo `json:"slides"`
}

type sessionResponse struct {
	SessionID string                 `json:"session_id"`
	Position  *domain.Position       `json:"position"`
	SlideID   string                 `json:"slide_id"`
	Decisions []domain.DecisionEvent `json:"decisions,omitempty"`
}

type navigateRequest struct {
	Direction string            `json:"direction,omitempty"` // "next" or "prev"
	Target    *int              `json:"target,omitempty"`    // absolute 0-based index
	Answers   map[string]string `json:"answers,omitempty"`   // current slide's field answers
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	resp := deckResponse{
		Title:       s.deck.Title,
		TotalSlides: len(s.deck.Slides),
		Slides:      make([]slideInfo, len(s.deck.Slides)),
	}
	for i, sl := range s.deck.Slides {
		resp.Slides[i] = slideInfo{Index: i, ID: sl.ID, Align: sl.Align, Title: sl.Title}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list sessions", "err", err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	pos, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		s.logger.Error("failed to load session", "session_id", sessionID, "err", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionID,
		Position:  pos,
		SlideID:   s.slideID(pos.CurrentIndex),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		s.logger.Error("failed to delete session", "session_id", sessionID, "err", err)
		http.Error(w, "failed to delete session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	pos := domain.NewPosition(0)
	if err := s.sessions.Save(r.Context(), sessionID, pos); err != nil {
		s.logger.Error("failed to reset session", "session_id", sessionID, "err", err)
		http.Error(w, "failed to reset session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionID,
		Position:  pos,
		SlideID:   s.slideID(0),
	})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("navigate: invalid request body", "err", err)
		return
	}
	if body.Direction == "" && body.Target == nil {
		http.Error(w, "either direction or target is required", http.StatusBadRequest)
		return
	}

	stored, err := s.sessions.LoadOrStart(r.Context(), sessionID, 0)
	if err != nil {
		s.logger.Error("failed to load session", "session_id", sessionID, "err", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	// Record the caller's answers so required-field validation sees them.
	answers := deck.NewAnswers()
	currentID := s.slideID(stored.CurrentIndex)
	for field, value := range body.Answers {
		answers.Set(currentID, field, value)
	}

	var decisions []domain.DecisionEvent
	sched := virtual.New()
	wizOpts := []slidenav.Option{
		slidenav.WithConfig(s.cfg),
		slidenav.WithScheduler(sched),
		slidenav.WithStartIndex(stored.CurrentIndex),
		slidenav.WithLogger(s.logger),
		slidenav.WithValidator(deck.NewValidator(s.deck, answers, s.logger)),
	}
	for _, h := range s.hooks {
		wizOpts = append(wizOpts, slidenav.WithLifecycleHooks(h))
	}
	wizOpts = append(wizOpts, slidenav.WithLifecycleHooks(domain.LifecycleHooks{
		OnDecision: func(ev domain.DecisionEvent) {
			decisions = append(decisions, ev)
		},
	}))
	wiz, err := slidenav.New(s.deck.Surface(), wizOpts...)
	if err != nil {
		s.logger.Error("failed to build wizard", "err", err)
		http.Error(w, "failed to build wizard", http.StatusInternalServerError)
		return
	}
	defer wiz.Destroy()

	switch {
	case body.Target != nil:
		wiz.GoToSlide(*body.Target)
	case body.Direction == "next":
		wiz.Next()
	case body.Direction == "prev":
		wiz.Prev()
	default:
		http.Error(w, "direction must be next or prev", http.StatusBadRequest)
		return
	}
	sched.RunUntilIdle()

	merged := mergePositions(stored, wiz.Position())
	if err := s.sessions.Save(r.Context(), sessionID, merged); err != nil {
		s.logger.Error("failed to save session", "session_id", sessionID, "err", err)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionID,
		Position:  merged,
		SlideID:   s.slideID(merged.CurrentIndex),
		Decisions: decisions,
	})
}

// mergePositions folds a request-scoped run back onto the stored history.
// The run's tracker started fresh at the stored index, so its first history
// entry duplicates the stored tail.
func mergePositions(stored, run *domain.Position) *domain.Position {
	merged := stored.Clone()
	merged.CurrentIndex = run.CurrentIndex
	merged.History = append(merged.History, run.History[1:]...)
	if run.MaxVisitedIndex > merged.MaxVisitedIndex {
		merged.MaxVisitedIndex = run.MaxVisitedIndex
	}
	return merged
}

func (s *Server) slideID(index int) string {
	if index < 0 || index >= len(s.deck.Slides) {
		return ""
	}
	return s.deck.Slides[index].ID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
