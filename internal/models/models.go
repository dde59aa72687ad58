package models

import "time"

type Session struct {
	ID                int64      `json:"id"`
	Token             string     `json:"token"`
	PlayerName        string     `json:"player_name"`
	StartDifficulty   Difficulty `json:"start_difficulty"`
	CurrentDifficulty Difficulty `json:"current_difficulty"`
	Score             int        `json:"score"` // number of correct answers
	AttemptCount      int        `json:"attempt_count"`
	TotalTimeSeconds  float64    `json:"total_time_seconds"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Completed reports whether the session has ended.
func (s *Session) Completed() bool {
	return s.CompletedAt != nil
}

type Attempt struct {
	ID            int64      `json:"id"`
	SessionID     int64      `json:"session_id"`
	SequenceIndex int        `json:"sequence_index"`
	Difficulty    Difficulty `json:"difficulty"`
	Correct       bool       `json:"correct"`
	TimeSeconds   float64    `json:"time_seconds"`
	UserAnswer    int        `json:"user_answer"`
	CorrectAnswer int        `json:"correct_answer"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Adaptation records a single difficulty change decided by the engine.
type Adaptation struct {
	ID             int64      `json:"id"`
	SessionID      int64      `json:"session_id"`
	AttemptIndex   int        `json:"attempt_index"` // sequence index of the attempt that triggered the change
	From           Difficulty `json:"from"`
	To             Difficulty `json:"to"`
	Reason         string     `json:"reason"`
	Accuracy       float64    `json:"accuracy"`
	AvgTimeSeconds float64    `json:"avg_time_seconds"`
	CreatedAt      time.Time  `json:"created_at"`
}

type SessionFilter struct {
	Difficulty    *Difficulty
	CompletedOnly bool
	Limit         int
	Offset        int
	OrderBy       string
	OrderDir      string
}

// DifficultyStat aggregates attempts at one level across sessions.
type DifficultyStat struct {
	Difficulty     Difficulty `json:"difficulty"`
	Attempts       int        `json:"attempts"`
	Correct        int        `json:"correct"`
	Accuracy       float64    `json:"accuracy"`
	AvgTimeSeconds float64    `json:"avg_time_seconds"`
}

// DifficultyBreakdown is the tracker's per-level slice of a session.
type DifficultyBreakdown struct {
	Attempts       int     `json:"attempts"`
	Correct        int     `json:"correct"`
	Accuracy       float64 `json:"accuracy"`
	AvgTimeSeconds float64 `json:"avg_time_seconds"`
}

// TrackerSummary is a read-only snapshot of a session's attempt log,
// used for end-of-session reporting.
type TrackerSummary struct {
	TotalAttempts  int                                `json:"total_attempts"`
	TotalCorrect   int                                `json:"total_correct"`
	Accuracy       float64                            `json:"accuracy"`
	AvgTimeSeconds float64                            `json:"avg_time_seconds"`
	ByDifficulty   map[Difficulty]DifficultyBreakdown `json:"by_difficulty"`
	RecentTrend    []bool                             `json:"recent_trend"`
}

// SessionSummary is the full end-of-session report.
type SessionSummary struct {
	Session     Session        `json:"session"`
	Tracker     TrackerSummary `json:"tracker"`
	Adaptations []Adaptation   `json:"adaptations"`
}
