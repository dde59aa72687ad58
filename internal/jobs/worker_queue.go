package jobs

import (
	"github.com/mathadv/quiz/internal/repository"
	"github.com/mathadv/quiz/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	statsPool *worker.Pool
	statsRepo repository.StatsRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(statsPool *worker.Pool, statsRepo repository.StatsRepository) JobQueue {
	return &WorkerQueue{
		statsPool: statsPool,
		statsRepo: statsRepo,
	}
}

func (q *WorkerQueue) EnqueueStatsRefresh() error {
	return q.statsPool.Submit(&worker.RefreshStatsJob{
		StatsRepo: q.statsRepo,
	})
}
