package worker

import (
	"context"

	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/repository"
)

// RefreshStatsJob recomputes the cross-session difficulty aggregates. It is
// enqueued after submitted answers and completed sessions; recomputation is
// idempotent, so dropped or coalesced runs are harmless.
type RefreshStatsJob struct {
	StatsRepo repository.StatsRepository
}

func (j *RefreshStatsJob) Name() string { return "refresh_stats" }

func (j *RefreshStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := j.StatsRepo.Refresh(ctx); err != nil {
		log.Error("failed to refresh difficulty stats: %v", err)
		return err
	}
	return nil
}
