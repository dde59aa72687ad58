package adaptive

import (
	"github.com/mathadv/quiz/internal/models"
)

// Adaptation reasons recorded in the history and surfaced to clients.
const (
	ReasonHighAccuracyFast = "high accuracy + fast"
	ReasonLowAccuracy      = "low accuracy"
	ReasonSlowButPassing   = "slow but passing"
)

// Config holds the tuning values for the difficulty engine. Values are
// product-tuning constants and come from app configuration, never from
// call sites.
type Config struct {
	// MinWindowSize is the number of attempts required before any
	// adaptation is considered.
	MinWindowSize int
	// LookbackWindow is the number of most recent attempts feeding the
	// windowed statistics.
	LookbackWindow int
	// HighAccuracy and LowAccuracy bound the escalate / de-escalate rules.
	HighAccuracy float64
	LowAccuracy  float64
	// FastTime and SlowTime are per-level response time thresholds in
	// seconds: at or under fast supports escalation, over slow forces
	// de-escalation.
	FastTime map[models.Difficulty]float64
	SlowTime map[models.Difficulty]float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MinWindowSize:  3,
		LookbackWindow: 5,
		HighAccuracy:   0.75,
		LowAccuracy:    0.50,
		FastTime: map[models.Difficulty]float64{
			models.Easy:   6,
			models.Medium: 10,
			models.Hard:   15,
		},
		SlowTime: map[models.Difficulty]float64{
			models.Easy:   15,
			models.Medium: 20,
			models.Hard:   30,
		},
	}
}

// rule is one declarative adaptation predicate. Rules are evaluated in
// order and the first match wins; step is +1 for escalation, -1 for
// de-escalation.
type rule struct {
	reason  string
	step    int
	matches func(cfg Config, level models.Difficulty, accuracy, avgTime float64) bool
}

var rules = []rule{
	{
		reason: ReasonHighAccuracyFast,
		step:   +1,
		matches: func(cfg Config, level models.Difficulty, accuracy, avgTime float64) bool {
			return accuracy >= cfg.HighAccuracy && avgTime <= cfg.FastTime[level]
		},
	},
	{
		reason: ReasonLowAccuracy,
		step:   -1,
		matches: func(cfg Config, level models.Difficulty, accuracy, avgTime float64) bool {
			return accuracy <= cfg.LowAccuracy
		},
	},
	{
		reason: ReasonSlowButPassing,
		step:   -1,
		matches: func(cfg Config, level models.Difficulty, accuracy, avgTime float64) bool {
			return accuracy < cfg.HighAccuracy && avgTime > cfg.SlowTime[level]
		},
	},
}

// Engine decides the difficulty for the next puzzle after each observed
// attempt. It never skips a level in one decision and always yields a
// valid difficulty; insufficient data holds the current level.
type Engine struct {
	cfg     Config
	initial models.Difficulty
	current models.Difficulty
	history []models.Adaptation
}

// NewEngine creates an engine at the given starting difficulty with empty
// history.
func NewEngine(cfg Config, start models.Difficulty) *Engine {
	if cfg.MinWindowSize <= 0 {
		cfg.MinWindowSize = 1
	}
	if cfg.FastTime == nil {
		cfg.FastTime = DefaultConfig().FastTime
	}
	if cfg.SlowTime == nil {
		cfg.SlowTime = DefaultConfig().SlowTime
	}
	if !start.Valid() {
		start = models.Easy
	}
	return &Engine{cfg: cfg, initial: start, current: start}
}

// Reset returns the engine to the given starting difficulty and clears the
// adaptation history.
func (e *Engine) Reset(start models.Difficulty) {
	if !start.Valid() {
		start = models.Easy
	}
	e.initial = start
	e.current = start
	e.history = nil
}

// CurrentDifficulty returns the level to use for the next puzzle.
func (e *Engine) CurrentDifficulty() models.Difficulty {
	return e.current
}

// History returns a copy of the adaptation history, one entry per actual
// level change.
func (e *Engine) History() []models.Adaptation {
	out := make([]models.Adaptation, len(e.history))
	copy(out, e.history)
	return out
}

// Observe evaluates the adaptation rules against the tracker's windowed
// statistics and returns the difficulty for the next puzzle. It is called
// once after every recorded attempt; when a rule fires it moves the
// current level exactly one step and appends a history entry.
func (e *Engine) Observe(t *Tracker) models.Difficulty {
	if t == nil || t.Len() < e.cfg.MinWindowSize {
		return e.current
	}

	accuracy, ok := t.RecentAccuracy(e.cfg.LookbackWindow)
	if !ok {
		return e.current
	}
	avgTime, ok := t.RecentAverageTime(e.cfg.LookbackWindow)
	if !ok {
		return e.current
	}

	for _, r := range rules {
		if !r.matches(e.cfg, e.current, accuracy, avgTime) {
			continue
		}

		next := e.current
		if r.step > 0 {
			next = e.current.Harder()
		} else {
			next = e.current.Easier()
		}
		if next == e.current {
			// Already at the boundary level; hold without a history entry.
			return e.current
		}

		e.history = append(e.history, models.Adaptation{
			AttemptIndex:   t.Len() - 1,
			From:           e.current,
			To:             next,
			Reason:         r.reason,
			Accuracy:       accuracy,
			AvgTimeSeconds: avgTime,
		})
		e.current = next
		return e.current
	}

	return e.current
}
