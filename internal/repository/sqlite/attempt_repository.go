package sqlite

import (
	"context"

	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository"
)

type attemptRepository struct {
	db *db.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *db.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	return r.db.InsertAttempt(ctx, attempt)
}

func (r *attemptRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.Attempt, error) {
	return r.db.GetSessionAttempts(ctx, sessionID)
}

type adaptationRepository struct {
	db *db.DB
}

// NewAdaptationRepository creates a new AdaptationRepository implementation
func NewAdaptationRepository(db *db.DB) repository.AdaptationRepository {
	return &adaptationRepository{db: db}
}

func (r *adaptationRepository) Insert(ctx context.Context, adaptation models.Adaptation) (int64, error) {
	return r.db.InsertAdaptation(ctx, adaptation)
}

func (r *adaptationRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.Adaptation, error) {
	return r.db.GetSessionAdaptations(ctx, sessionID)
}
