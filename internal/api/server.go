// Package api exposes Hearth's operational HTTP endpoints: health,
// scheduler status and read-only views of pending work. It is a local
// observability surface, not a public API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hearthbot/hearth/internal/logging"
	"github.com/hearthbot/hearth/internal/scheduler"
	"github.com/hearthbot/hearth/internal/storage"
)

// Server is the ops HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server

	sched     *scheduler.Scheduler
	reminders *storage.ReminderStore
	cooking   *storage.CookingStore

	startedAt time.Time
	log       *logging.Logger
}

// Config for the server
type Config struct {
	Port      int
	Scheduler *scheduler.Scheduler
	DB        *storage.DB
}

// New creates the ops server
func New(cfg Config) *Server {
	s := &Server{
		sched:     cfg.Scheduler,
		reminders: storage.NewReminderStore(cfg.DB),
		cooking:   storage.NewCookingStore(cfg.DB),
		startedAt: time.Now(),
		log:       logging.WithField("component", "api"),
	}

	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/reminders/pending", s.handlePendingReminders)
		r.Get("/cooking/upcoming", s.handleUpcomingCooking)
	})

	s.router = r
}

// Start begins serving. Blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.log.Info("ops server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	pending, err := s.reminders.PendingCount()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := map[string]interface{}{
		"uptime_seconds":    int(time.Since(s.startedAt).Seconds()),
		"pending_reminders": pending,
	}
	if s.sched != nil {
		status["scheduler"] = s.sched.GetStats()
	}
	s.respondJSON(w, http.StatusOK, status)
}

func (s *Server) handlePendingReminders(w http.ResponseWriter, r *http.Request) {
	pending, err := s.reminders.Pending(100)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(pending),
		"reminders": pending,
	})
}

func (s *Server) handleUpcomingCooking(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")
	meals, err := s.cooking.ListUpcoming(today, 20)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(meals),
		"meals": meals,
	})
}
