package repository

import (
	"context"

	"github.com/mathadv/quiz/internal/models"
)

// SessionRepository handles session data access
type SessionRepository interface {
	Insert(ctx context.Context, session models.Session) (int64, error)
	Update(ctx context.Context, session models.Session) error
	Get(ctx context.Context, id int64) (*models.Session, error)
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error)
	Count(ctx context.Context, filter models.SessionFilter) (int, error)
}

// AttemptRepository handles the persisted attempt log
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.Attempt, error)
}

// AdaptationRepository handles recorded difficulty changes
type AdaptationRepository interface {
	Insert(ctx context.Context, adaptation models.Adaptation) (int64, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.Adaptation, error)
}

// StatsRepository handles cross-session statistics
type StatsRepository interface {
	DifficultyStats(ctx context.Context) ([]models.DifficultyStat, error)
	Refresh(ctx context.Context) error
}
