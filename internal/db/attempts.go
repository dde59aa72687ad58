package db

import (
	"context"

	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
)

func (db *DB) InsertAttempt(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting attempt: session_id=%d, seq=%d, correct=%t", a.SessionID, a.SequenceIndex, a.Correct)

	res, err := db.ExecContext(ctx, `
INSERT INTO attempts (session_id, sequence_index, difficulty, correct, time_seconds, user_answer, correct_answer)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.SessionID, a.SequenceIndex, a.Difficulty.String(), a.Correct, a.TimeSeconds, a.UserAnswer, a.CorrectAnswer)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	return id, nil
}

func (db *DB) GetSessionAttempts(ctx context.Context, sessionID int64) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching attempts: session_id=%d", sessionID)

	rows, err := db.QueryContext(ctx, `
SELECT id, session_id, sequence_index, difficulty, correct, time_seconds, user_answer, correct_answer, created_at
FROM attempts
WHERE session_id = ?
ORDER BY sequence_index ASC
`, sessionID)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var (
			a    models.Attempt
			diff string
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &a.SequenceIndex, &diff, &a.Correct, &a.TimeSeconds, &a.UserAnswer, &a.CorrectAnswer, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt: %v", err)
			return nil, err
		}
		if a.Difficulty, err = models.ParseDifficulty(diff); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
