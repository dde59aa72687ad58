package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type sessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *db.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, session models.Session) (int64, error) {
	return r.db.InsertSession(ctx, session)
}

func (r *sessionRepository) Update(ctx context.Context, session models.Session) error {
	return r.db.UpdateSession(ctx, session)
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.Session, error) {
	return r.db.GetSession(ctx, id)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	return r.db.GetSessionByToken(ctx, token)
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query := filterQuery(sqlBuilder.
		Select("id", "token", "player_name", "start_difficulty", "current_difficulty",
			"score", "attempt_count", "total_time_seconds", "completed_at", "created_at").
		From("sessions"), filter)

	// Safe ORDER BY with validation
	orderBy := "created_at"
	switch filter.OrderBy {
	case "created_at", "score", "attempt_count":
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if filter.OrderDir == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build session list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var (
			s                  models.Session
			startDiff, curDiff string
			completedAt        sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Token, &s.PlayerName, &startDiff, &curDiff,
			&s.Score, &s.AttemptCount, &s.TotalTimeSeconds, &completedAt, &s.CreatedAt); err != nil {
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
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query := filterQuery(sqlBuilder.Select("COUNT(*)").From("sessions"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build session count query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error("failed to count sessions: %v", err)
		return 0, err
	}
	return count, nil
}

func filterQuery(query squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	if filter.Difficulty != nil {
		query = query.Where(squirrel.Eq{"current_difficulty": filter.Difficulty.String()})
	}
	if filter.CompletedOnly {
		query = query.Where(squirrel.NotEq{"completed_at": nil})
	}
	return query
}
