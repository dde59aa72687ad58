package services

import (
	"context"

	"github.com/mathadv/quiz/internal/errors"
	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	DifficultyStats(ctx context.Context) ([]models.DifficultyStat, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error)
	RefreshStats(ctx context.Context) error
}

type statsService struct {
	statsRepo   repository.StatsRepository
	sessionRepo repository.SessionRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, sessionRepo repository.SessionRepository) StatsService {
	return &statsService{statsRepo: statsRepo, sessionRepo: sessionRepo}
}

func (s *statsService) DifficultyStats(ctx context.Context) ([]models.DifficultyStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting difficulty stats")

	stats, err := s.statsRepo.DifficultyStats(ctx)
	if err != nil {
		log.Error("failed to get difficulty stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing sessions: limit=%d, offset=%d", filter.Limit, filter.Offset)

	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.sessionRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count sessions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return sessions, totalCount, nil
}

func (s *statsService) RefreshStats(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("refreshing stats cache")

	if err := s.statsRepo.Refresh(ctx); err != nil {
		log.Error("failed to refresh stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
