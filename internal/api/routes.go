package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(15 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/{token}", s.handleGetSession)
		r.Post("/{token}/answers", s.handleSubmitAnswer)
		r.Post("/{token}/end", s.handleEndSession)
		r.Get("/{token}/summary", s.handleSessionSummary)
		r.Get("/{token}/adaptations", s.handleSessionAdaptations)
	})

	r.Get("/stats", s.handleDifficultyStats)
	r.Get("/stats/sessions", s.handleListSessions)

	return r
}
