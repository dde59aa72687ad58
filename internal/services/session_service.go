package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mathadv/quiz/internal/adaptive"
	"github.com/mathadv/quiz/internal/errors"
	"github.com/mathadv/quiz/internal/jobs"
	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/metrics"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/puzzle"
	"github.com/mathadv/quiz/internal/repository"
)

// AnswerResult is the outcome of grading one submitted answer.
type AnswerResult struct {
	Correct          bool               `json:"correct"`
	CorrectAnswer    int                `json:"correct_answer"`
	Session          models.Session     `json:"session"`
	Adaptation       *models.Adaptation `json:"adaptation,omitempty"`
	NextPuzzle       *models.Puzzle     `json:"next_puzzle,omitempty"`
	NextQuestion     string             `json:"next_question,omitempty"`
	RecentAccuracy   *float64           `json:"recent_accuracy,omitempty"`
	RecentAvgSeconds *float64           `json:"recent_avg_seconds,omitempty"`
	SessionComplete  bool               `json:"session_complete"`
}

// SessionService handles quiz session business logic
type SessionService interface {
	StartSession(ctx context.Context, playerName string, difficulty models.Difficulty) (*models.Session, models.Puzzle, error)
	CurrentPuzzle(ctx context.Context, token string) (*models.Session, models.Puzzle, error)
	SubmitAnswer(ctx context.Context, token string, answer int, timeSeconds float64) (*AnswerResult, error)
	EndSession(ctx context.Context, token string) (*models.SessionSummary, error)
	Summary(ctx context.Context, token string) (*models.SessionSummary, error)
	Adaptations(ctx context.Context, token string) ([]models.Adaptation, error)
}

// activeSession bundles the in-memory state owned by one running session:
// the attempt tracker, the difficulty engine, the puzzle generator, and the
// puzzle currently awaiting an answer.
type activeSession struct {
	session *models.Session
	tracker *adaptive.Tracker
	engine  *adaptive.Engine
	gen     *puzzle.Generator
	current models.Puzzle
	started time.Time
}

type sessionService struct {
	sessionRepo    repository.SessionRepository
	attemptRepo    repository.AttemptRepository
	adaptationRepo repository.AdaptationRepository
	queue          jobs.JobQueue
	engineCfg      adaptive.Config
	maxPuzzles     int
	seed           int64

	mu     sync.Mutex
	active map[string]*activeSession
}

// NewSessionService creates a new SessionService. maxPuzzles bounds the
// session length (0 = unlimited). A non-zero seed makes puzzle generation
// deterministic, used by tests.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	attemptRepo repository.AttemptRepository,
	adaptationRepo repository.AdaptationRepository,
	queue jobs.JobQueue,
	engineCfg adaptive.Config,
	maxPuzzles int,
	seed int64,
) SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		attemptRepo:    attemptRepo,
		adaptationRepo: adaptationRepo,
		queue:          queue,
		engineCfg:      engineCfg,
		maxPuzzles:     maxPuzzles,
		seed:           seed,
		active:         make(map[string]*activeSession),
	}
}

func (s *sessionService) StartSession(ctx context.Context, playerName string, difficulty models.Difficulty) (*models.Session, models.Puzzle, error) {
	log := logger.FromContext(ctx)

	if playerName == "" {
		playerName = "Learner"
	}
	if !difficulty.Valid() {
		return nil, models.Puzzle{}, errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}

	session := models.Session{
		Token:             uuid.NewString(),
		PlayerName:        playerName,
		StartDifficulty:   difficulty,
		CurrentDifficulty: difficulty,
		CreatedAt:         time.Now(),
	}

	id, err := s.sessionRepo.Insert(ctx, session)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, models.Puzzle{}, errors.NewInternalError(err)
	}
	session.ID = id

	active := &activeSession{
		session: &session,
		tracker: adaptive.NewTracker(),
		engine:  adaptive.NewEngine(s.engineCfg, difficulty),
		gen:     puzzle.New(s.seed),
		started: time.Now(),
	}
	active.current = active.gen.Generate(difficulty)

	s.mu.Lock()
	s.active[session.Token] = active
	s.mu.Unlock()

	metrics.RecordSessionStarted()
	log.Info("session started: id=%d, player=%s, difficulty=%s", id, playerName, difficulty)
	return &session, active.current, nil
}

func (s *sessionService) CurrentPuzzle(ctx context.Context, token string) (*models.Session, models.Puzzle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.activeSessionLocked(ctx, token)
	if err != nil {
		return nil, models.Puzzle{}, err
	}
	session := *active.session
	return &session, active.current, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, token string, answer int, timeSeconds float64) (*AnswerResult, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.activeSessionLocked(ctx, token)
	if err != nil {
		return nil, err
	}

	session := active.session
	correct := answer == active.current.Answer

	attempt, err := active.tracker.Record(active.current.Difficulty, correct, timeSeconds)
	if err != nil {
		return nil, err
	}
	attempt.SessionID = session.ID
	attempt.UserAnswer = answer
	attempt.CorrectAnswer = active.current.Answer

	if _, err := s.attemptRepo.Insert(ctx, attempt); err != nil {
		log.Error("failed to persist attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	metrics.RecordAttempt(attempt.Difficulty.String(), correct, timeSeconds)

	session.AttemptCount++
	session.TotalTimeSeconds += timeSeconds
	if correct {
		session.Score++
	}

	result := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: active.current.Answer,
	}

	before := active.engine.CurrentDifficulty()
	next := active.engine.Observe(active.tracker)
	if next != before {
		history := active.engine.History()
		change := history[len(history)-1]
		change.SessionID = session.ID
		if id, err := s.adaptationRepo.Insert(ctx, change); err != nil {
			log.Error("failed to persist adaptation: %v", err)
		} else {
			change.ID = id
		}
		direction := "down"
		if next > before {
			direction = "up"
		}
		metrics.RecordAdaptation(direction)
		log.Info("difficulty adjusted: %s -> %s (%s)", before, next, change.Reason)
		result.Adaptation = &change
	}
	session.CurrentDifficulty = next

	if acc, ok := active.tracker.RecentAccuracy(s.engineCfg.LookbackWindow); ok {
		result.RecentAccuracy = &acc
	}
	if avg, ok := active.tracker.RecentAverageTime(s.engineCfg.LookbackWindow); ok {
		result.RecentAvgSeconds = &avg
	}

	if s.maxPuzzles > 0 && session.AttemptCount >= s.maxPuzzles {
		now := time.Now()
		session.CompletedAt = &now
		result.SessionComplete = true
		delete(s.active, token)
		metrics.RecordSessionCompleted()
		log.Info("session completed: id=%d, score=%d/%d", session.ID, session.Score, session.AttemptCount)
	} else {
		active.current = active.gen.Generate(next)
		result.NextPuzzle = &active.current
		result.NextQuestion = active.current.Question()
	}

	if err := s.sessionRepo.Update(ctx, *session); err != nil {
		log.Error("failed to update session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.queue.EnqueueStatsRefresh(); err != nil {
		log.Warn("stats refresh not enqueued: %v", err)
	}

	result.Session = *session
	return result, nil
}

func (s *sessionService) EndSession(ctx context.Context, token string) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	active, err := s.activeSessionLocked(ctx, token)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	session := active.session
	now := time.Now()
	session.CompletedAt = &now
	delete(s.active, token)
	s.mu.Unlock()

	if err := s.sessionRepo.Update(ctx, *session); err != nil {
		log.Error("failed to complete session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	metrics.RecordSessionCompleted()

	if err := s.queue.EnqueueStatsRefresh(); err != nil {
		log.Warn("stats refresh not enqueued: %v", err)
	}

	log.Info("session ended: id=%d, score=%d/%d", session.ID, session.Score, session.AttemptCount)
	return s.Summary(ctx, token)
}

// Summary rebuilds the end-of-session report from the persisted attempt
// log, so it works for both running and completed sessions.
func (s *sessionService) Summary(ctx context.Context, token string) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", token)
	}

	attempts, err := s.attemptRepo.ListBySession(ctx, session.ID)
	if err != nil {
		log.Error("failed to load attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}

	tracker := adaptive.NewTracker()
	for _, a := range attempts {
		if _, err := tracker.Record(a.Difficulty, a.Correct, a.TimeSeconds); err != nil {
			log.Error("failed to replay attempt %d: %v", a.ID, err)
			return nil, errors.NewInternalError(err)
		}
	}

	adaptations, err := s.adaptationRepo.ListBySession(ctx, session.ID)
	if err != nil {
		log.Error("failed to load adaptations: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.SessionSummary{
		Session:     *session,
		Tracker:     tracker.Summary(),
		Adaptations: adaptations,
	}, nil
}

func (s *sessionService) Adaptations(ctx context.Context, token string) ([]models.Adaptation, error) {
	log := logger.FromContext(ctx)

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", token)
	}
	return s.adaptationRepo.ListBySession(ctx, session.ID)
}

// activeSessionLocked resolves a token to its running session. Callers must
// hold s.mu.
func (s *sessionService) activeSessionLocked(ctx context.Context, token string) (*activeSession, error) {
	if active, ok := s.active[token]; ok {
		return active, nil
	}

	// Distinguish "finished" from "never existed" for a useful error.
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if session != nil && session.Completed() {
		return nil, errors.NewConflictError("session already completed")
	}
	return nil, errors.NewNotFoundError("session", token)
}
