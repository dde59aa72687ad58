// Package adaptive contains the session-scoped performance tracker and the
// rule-based difficulty engine. Both are pure in-memory components owned by
// a single session; neither performs any I/O.
package adaptive

import (
	"math"

	"github.com/mathadv/quiz/internal/errors"
	"github.com/mathadv/quiz/internal/models"
)

// Tracker is an append-only log of puzzle attempts with derived rolling
// statistics. Attempts are never mutated or removed once recorded; their
// sequence index is the canonical chronological order.
type Tracker struct {
	attempts []models.Attempt
}

// NewTracker creates an empty tracker for a new session.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record appends a new attempt and assigns it the next sequence index.
// Invalid input (unknown difficulty, negative or non-finite time) is
// rejected with a validation error; the log is left untouched.
func (t *Tracker) Record(difficulty models.Difficulty, correct bool, timeSeconds float64) (models.Attempt, error) {
	if !difficulty.Valid() {
		return models.Attempt{}, errors.NewValidationError("difficulty", "must be easy, medium, or hard")
	}
	if timeSeconds < 0 || math.IsNaN(timeSeconds) || math.IsInf(timeSeconds, 0) {
		return models.Attempt{}, errors.NewValidationError("time_seconds", "must be a non-negative finite number")
	}

	attempt := models.Attempt{
		SequenceIndex: len(t.attempts),
		Difficulty:    difficulty,
		Correct:       correct,
		TimeSeconds:   timeSeconds,
	}
	t.attempts = append(t.attempts, attempt)
	return attempt, nil
}

// Len returns the number of recorded attempts.
func (t *Tracker) Len() int {
	return len(t.attempts)
}

// Attempts returns a copy of the attempt log in chronological order.
func (t *Tracker) Attempts() []models.Attempt {
	out := make([]models.Attempt, len(t.attempts))
	copy(out, t.attempts)
	return out
}

// RecentAccuracy returns the fraction of correct answers among the last
// window attempts (all attempts if fewer exist). The second return value is
// false when the log is empty: callers must treat that as "no signal".
func (t *Tracker) RecentAccuracy(window int) (float64, bool) {
	recent := t.recent(window)
	if len(recent) == 0 {
		return 0, false
	}
	correct := 0
	for _, a := range recent {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(recent)), true
}

// RecentAverageTime returns the mean response time over the last window
// attempts; false when the log is empty.
func (t *Tracker) RecentAverageTime(window int) (float64, bool) {
	recent := t.recent(window)
	if len(recent) == 0 {
		return 0, false
	}
	total := 0.0
	for _, a := range recent {
		total += a.TimeSeconds
	}
	return total / float64(len(recent)), true
}

// AccuracyFor returns the accuracy over all attempts at the given level;
// false when none were recorded at that level.
func (t *Tracker) AccuracyFor(difficulty models.Difficulty) (float64, bool) {
	n, correct := 0, 0
	for _, a := range t.attempts {
		if a.Difficulty != difficulty {
			continue
		}
		n++
		if a.Correct {
			correct++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(correct) / float64(n), true
}

// AverageTimeFor returns the mean response time over all attempts at the
// given level; false when none were recorded at that level.
func (t *Tracker) AverageTimeFor(difficulty models.Difficulty) (float64, bool) {
	n, total := 0, 0.0
	for _, a := range t.attempts {
		if a.Difficulty != difficulty {
			continue
		}
		n++
		total += a.TimeSeconds
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// Summary builds a read-only snapshot for end-of-session reporting.
func (t *Tracker) Summary() models.TrackerSummary {
	summary := models.TrackerSummary{
		TotalAttempts: len(t.attempts),
		ByDifficulty:  make(map[models.Difficulty]models.DifficultyBreakdown),
	}

	totalTime := 0.0
	for _, a := range t.attempts {
		if a.Correct {
			summary.TotalCorrect++
		}
		totalTime += a.TimeSeconds
	}
	if summary.TotalAttempts > 0 {
		summary.Accuracy = float64(summary.TotalCorrect) / float64(summary.TotalAttempts)
		summary.AvgTimeSeconds = totalTime / float64(summary.TotalAttempts)
	}

	for _, d := range models.Difficulties {
		acc, ok := t.AccuracyFor(d)
		if !ok {
			continue
		}
		avg, _ := t.AverageTimeFor(d)
		breakdown := models.DifficultyBreakdown{Accuracy: acc, AvgTimeSeconds: avg}
		for _, a := range t.attempts {
			if a.Difficulty != d {
				continue
			}
			breakdown.Attempts++
			if a.Correct {
				breakdown.Correct++
			}
		}
		summary.ByDifficulty[d] = breakdown
	}

	for _, a := range t.recent(defaultTrendWindow) {
		summary.RecentTrend = append(summary.RecentTrend, a.Correct)
	}
	return summary
}

// defaultTrendWindow bounds the recent-trend slice in summaries.
const defaultTrendWindow = 5

func (t *Tracker) recent(window int) []models.Attempt {
	if window <= 0 || window > len(t.attempts) {
		return t.attempts
	}
	return t.attempts[len(t.attempts)-window:]
}
