package sqlite

import (
	"context"

	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository"
)

type statsRepository struct {
	db *db.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *db.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DifficultyStats(ctx context.Context) ([]models.DifficultyStat, error) {
	return r.db.DifficultyStats(ctx)
}

func (r *statsRepository) Refresh(ctx context.Context) error {
	return r.db.RefreshDifficultyStats(ctx)
}
