package db

import (
	"context"
	"database/sql"

	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
)

// DifficultyStats reads the per-difficulty aggregates from the cache table.
func (db *DB) DifficultyStats(ctx context.Context) ([]models.DifficultyStat, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching difficulty stats from cache")

	rows, err := db.QueryContext(ctx, `
SELECT difficulty, attempts, correct, accuracy, avg_time_seconds
FROM difficulty_stats_cache
ORDER BY difficulty
`)
	if err != nil {
		log.Error("failed to query difficulty stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DifficultyStat
	for rows.Next() {
		var (
			s    models.DifficultyStat
			diff string
		)
		if err := rows.Scan(&diff, &s.Attempts, &s.Correct, &s.Accuracy, &s.AvgTimeSeconds); err != nil {
			log.Error("failed to scan difficulty stat: %v", err)
			return nil, err
		}
		if s.Difficulty, err = models.ParseDifficulty(diff); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RefreshDifficultyStats recomputes the difficulty_stats_cache table from
// the attempt log in a single transaction.
func (db *DB) RefreshDifficultyStats(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("refreshing difficulty stats cache")

	return tx(ctx, db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM difficulty_stats_cache`); err != nil {
			return err
		}
		_, err := t.ExecContext(ctx, `
INSERT INTO difficulty_stats_cache (difficulty, attempts, correct, accuracy, avg_time_seconds)
SELECT
    difficulty,
    COUNT(*),
    SUM(CASE WHEN correct THEN 1 ELSE 0 END),
    CAST(SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS REAL) / COUNT(*),
    AVG(time_seconds)
FROM attempts
GROUP BY difficulty
`)
		return err
	})
}
