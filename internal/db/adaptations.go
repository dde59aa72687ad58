package db

import (
	"context"

	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
)

func (db *DB) InsertAdaptation(ctx context.Context, a models.Adaptation) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting adaptation: session_id=%d, %s -> %s (%s)", a.SessionID, a.From, a.To, a.Reason)

	res, err := db.ExecContext(ctx, `
INSERT INTO adaptations (session_id, attempt_index, from_difficulty, to_difficulty, reason, accuracy, avg_time_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.SessionID, a.AttemptIndex, a.From.String(), a.To.String(), a.Reason, a.Accuracy, a.AvgTimeSeconds)
	if err != nil {
		log.Error("failed to insert adaptation: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get adaptation id: %v", err)
		return 0, err
	}
	return id, nil
}

func (db *DB) GetSessionAdaptations(ctx context.Context, sessionID int64) ([]models.Adaptation, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching adaptations: session_id=%d", sessionID)

	rows, err := db.QueryContext(ctx, `
SELECT id, session_id, attempt_index, from_difficulty, to_difficulty, reason, accuracy, avg_time_seconds, created_at
FROM adaptations
WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		log.Error("failed to query adaptations: %v", err)
		return nil, err
	}
	defer rows.Close()

	var adaptations []models.Adaptation
	for rows.Next() {
		var (
			a        models.Adaptation
			from, to string
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.AttemptIndex, &from, &to, &a.Reason, &a.Accuracy, &a.AvgTimeSeconds, &a.CreatedAt); err != nil {
			log.Error("failed to scan adaptation: %v", err)
			return nil, err
		}
		if a.From, err = models.ParseDifficulty(from); err != nil {
			return nil, err
		}
		if a.To, err = models.ParseDifficulty(to); err != nil {
			return nil, err
		}
		adaptations = append(adaptations, a)
	}
	return adaptations, rows.Err()
}
