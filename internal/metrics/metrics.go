// Package metrics exposes Prometheus counters for quiz activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mathadv",
		Name:      "sessions_started_total",
		Help:      "Number of quiz sessions started.",
	})

	sessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mathadv",
		Name:      "sessions_completed_total",
		Help:      "Number of quiz sessions completed.",
	})

	attempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mathadv",
		Name:      "attempts_total",
		Help:      "Number of answered puzzles by difficulty and outcome.",
	}, []string{"difficulty", "outcome"})

	adaptations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mathadv",
		Name:      "adaptations_total",
		Help:      "Number of difficulty changes by direction.",
	}, []string{"direction"})

	responseTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mathadv",
		Name:      "response_time_seconds",
		Help:      "Learner response time per puzzle.",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 60},
	})
)

// RecordSessionStarted increments the session start counter.
func RecordSessionStarted() {
	sessionsStarted.Inc()
}

// RecordSessionCompleted increments the session completion counter.
func RecordSessionCompleted() {
	sessionsCompleted.Inc()
}

// RecordAttempt counts an answered puzzle and observes its response time.
func RecordAttempt(difficulty string, correct bool, timeSeconds float64) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	attempts.WithLabelValues(difficulty, outcome).Inc()
	responseTime.Observe(timeSeconds)
}

// RecordAdaptation counts a difficulty change; direction is "up" or "down".
func RecordAdaptation(direction string) {
	adaptations.WithLabelValues(direction).Inc()
}
