package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
)

func (db *DB) InsertSession(ctx context.Context, s models.Session) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting session: player=%s, difficulty=%s", s.PlayerName, s.StartDifficulty)

	res, err := db.ExecContext(ctx, `
INSERT INTO sessions (token, player_name, start_difficulty, current_difficulty, score, attempt_count, total_time_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, s.Token, s.PlayerName, s.StartDifficulty.String(), s.CurrentDifficulty.String(), s.Score, s.AttemptCount, s.TotalTimeSeconds)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (db *DB) UpdateSession(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating session: id=%d, difficulty=%s, score=%d", s.ID, s.CurrentDifficulty, s.Score)

	var completedAt interface{}
	if s.CompletedAt != nil {
		completedAt = s.CompletedAt
	}

	_, err := db.ExecContext(ctx, `
UPDATE sessions
SET current_difficulty = ?, score = ?, attempt_count = ?, total_time_seconds = ?, completed_at = ?
WHERE id = ?
`, s.CurrentDifficulty.String(), s.Score, s.AttemptCount, s.TotalTimeSeconds, completedAt, s.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

func (db *DB) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching session: id=%d", id)

	row := db.QueryRowContext(ctx, `
SELECT id, token, player_name, start_difficulty, current_difficulty, score, attempt_count, total_time_seconds, completed_at, created_at
FROM sessions
WHERE id = ?
`, id)
	return scanSession(row, log)
}

func (db *DB) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching session: token=%s", token)

	row := db.QueryRowContext(ctx, `
SELECT id, token, player_name, start_difficulty, current_difficulty, score, attempt_count, total_time_seconds, completed_at, created_at
FROM sessions
WHERE token = ?
`, token)
	return scanSession(row, log)
}

func scanSession(row *sql.Row, log *logger.Logger) (*models.Session, error) {
	var (
		s                  models.Session
		startDiff, curDiff string
		completedAt        sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Token, &s.PlayerName, &startDiff, &curDiff, &s.Score, &s.AttemptCount, &s.TotalTimeSeconds, &completedAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to scan session: %v", err)
		return nil, err
	}
	if s.StartDifficulty, err = models.ParseDifficulty(startDiff); err != nil {
		return nil, err
	}
	if s.CurrentDifficulty, err = models.ParseDifficulty(curDiff); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	return &s, nil
}
