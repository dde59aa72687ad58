package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mathadv/quiz/internal/adaptive"
	apperrors "github.com/mathadv/quiz/internal/errors"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/services"
	"github.com/mathadv/quiz/internal/testutil/mocks"
)

type serviceMocks struct {
	sessions    *mocks.MockSessionRepository
	attempts    *mocks.MockAttemptRepository
	adaptations *mocks.MockAdaptationRepository
	queue       *mocks.MockJobQueue
}

func newServiceMocks() serviceMocks {
	return serviceMocks{
		sessions:    new(mocks.MockSessionRepository),
		attempts:    new(mocks.MockAttemptRepository),
		adaptations: new(mocks.MockAdaptationRepository),
		queue:       new(mocks.MockJobQueue),
	}
}

func (m serviceMocks) service(cfg adaptive.Config, maxPuzzles int) services.SessionService {
	return services.NewSessionService(m.sessions, m.attempts, m.adaptations, m.queue, cfg, maxPuzzles, 42)
}

func (m serviceMocks) assertExpectations(t *testing.T) {
	m.sessions.AssertExpectations(t)
	m.attempts.AssertExpectations(t)
	m.adaptations.AssertExpectations(t)
	m.queue.AssertExpectations(t)
}

func TestStartSession(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.AnythingOfType("models.Session")).Return(int64(1), nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	session, p, err := svc.StartSession(context.Background(), "Ada", models.Medium)
	require.NoError(t, err)
	assert.Equal(t, int64(1), session.ID)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "Ada", session.PlayerName)
	assert.Equal(t, models.Medium, session.StartDifficulty)
	assert.Equal(t, models.Medium, session.CurrentDifficulty)
	assert.Equal(t, models.Medium, p.Difficulty)
	assert.NotEmpty(t, p.Question())

	m.assertExpectations(t)
}

func TestStartSession_DefaultPlayerName(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
		return s.PlayerName == "Learner"
	})).Return(int64(1), nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	_, _, err := svc.StartSession(context.Background(), "", models.Easy)
	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestStartSession_InvalidDifficulty(t *testing.T) {
	m := newServiceMocks()
	svc := m.service(adaptive.DefaultConfig(), 10)

	_, _, err := svc.StartSession(context.Background(), "Ada", models.Difficulty(9))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestSubmitAnswer_CorrectAndWrong(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.sessions.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.queue.On("EnqueueStatsRefresh").Return(nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	ctx := context.Background()
	session, p, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(ctx, session.Token, p.Answer, 2.0)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, p.Answer, result.CorrectAnswer)
	assert.Equal(t, 1, result.Session.Score)
	assert.Equal(t, 1, result.Session.AttemptCount)
	assert.False(t, result.SessionComplete)
	require.NotNil(t, result.NextPuzzle)
	assert.Equal(t, result.NextPuzzle.Question(), result.NextQuestion)

	wrong := result.NextPuzzle.Answer + 1
	result, err = svc.SubmitAnswer(ctx, session.Token, wrong, 3.0)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 1, result.Session.Score, "wrong answer does not score")
	assert.Equal(t, 2, result.Session.AttemptCount)
	assert.InDelta(t, 5.0, result.Session.TotalTimeSeconds, 1e-9)

	m.assertExpectations(t)
}

func TestSubmitAnswer_RecordsAdaptation(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.sessions.On("Update", mock.Anything, mock.Anything).Return(nil)
	m.attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.adaptations.On("Insert", mock.Anything, mock.MatchedBy(func(a models.Adaptation) bool {
		return a.SessionID == 1 && a.From == models.Easy && a.To == models.Medium
	})).Return(int64(5), nil)
	m.queue.On("EnqueueStatsRefresh").Return(nil)

	cfg := adaptive.DefaultConfig()
	cfg.MinWindowSize = 3
	svc := m.service(cfg, 10)

	ctx := context.Background()
	session, p, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	// Three fast correct answers escalate to medium on the third.
	for i := 0; i < 2; i++ {
		result, err := svc.SubmitAnswer(ctx, session.Token, p.Answer, 1.0)
		require.NoError(t, err)
		assert.Nil(t, result.Adaptation)
		p = *result.NextPuzzle
	}

	result, err := svc.SubmitAnswer(ctx, session.Token, p.Answer, 1.0)
	require.NoError(t, err)
	require.NotNil(t, result.Adaptation)
	assert.Equal(t, adaptive.ReasonHighAccuracyFast, result.Adaptation.Reason)
	assert.Equal(t, int64(5), result.Adaptation.ID)
	assert.Equal(t, models.Medium, result.Session.CurrentDifficulty)
	require.NotNil(t, result.NextPuzzle)
	assert.Equal(t, models.Medium, result.NextPuzzle.Difficulty)
	require.NotNil(t, result.RecentAccuracy)
	assert.InDelta(t, 1.0, *result.RecentAccuracy, 1e-9)

	m.assertExpectations(t)
}

func TestSubmitAnswer_CompletesAtMaxPuzzles(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
		return s.AttemptCount < 2 || s.CompletedAt != nil
	})).Return(nil)
	m.attempts.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.queue.On("EnqueueStatsRefresh").Return(nil)
	svc := m.service(adaptive.DefaultConfig(), 2)

	ctx := context.Background()
	session, p, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(ctx, session.Token, p.Answer, 2.0)
	require.NoError(t, err)
	assert.False(t, result.SessionComplete)

	result, err = svc.SubmitAnswer(ctx, session.Token, result.NextPuzzle.Answer, 2.0)
	require.NoError(t, err)
	assert.True(t, result.SessionComplete)
	assert.Nil(t, result.NextPuzzle, "no next puzzle after the last attempt")
	require.NotNil(t, result.Session.CompletedAt)

	// The session is no longer active; a further answer is a conflict.
	m.sessions.On("GetByToken", mock.Anything, session.Token).Return(&result.Session, nil)
	_, err = svc.SubmitAnswer(ctx, session.Token, 1, 2.0)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)

	m.assertExpectations(t)
}

func TestSubmitAnswer_UnknownToken(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("GetByToken", mock.Anything, "missing").Return(nil, nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	_, err := svc.SubmitAnswer(context.Background(), "missing", 1, 2.0)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestSubmitAnswer_RejectsNegativeTime(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	ctx := context.Background()
	session, p, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, session.Token, p.Answer, -1.0)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestEndSession(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.sessions.On("Update", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
		return s.CompletedAt != nil
	})).Return(nil)
	m.queue.On("EnqueueStatsRefresh").Return(nil)

	now := time.Now()
	completed := models.Session{ID: 1, Token: "t", PlayerName: "Ada", CompletedAt: &now}
	m.sessions.On("GetByToken", mock.Anything, mock.Anything).Return(&completed, nil)
	m.attempts.On("ListBySession", mock.Anything, int64(1)).Return([]models.Attempt{
		{SequenceIndex: 0, Difficulty: models.Easy, Correct: true, TimeSeconds: 2},
		{SequenceIndex: 1, Difficulty: models.Easy, Correct: false, TimeSeconds: 4},
	}, nil)
	m.adaptations.On("ListBySession", mock.Anything, int64(1)).Return([]models.Adaptation{}, nil)

	svc := m.service(adaptive.DefaultConfig(), 10)

	ctx := context.Background()
	session, _, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	summary, err := svc.EndSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Tracker.TotalAttempts)
	assert.Equal(t, 1, summary.Tracker.TotalCorrect)
	assert.InDelta(t, 0.5, summary.Tracker.Accuracy, 1e-9)
	assert.Empty(t, summary.Adaptations)

	m.assertExpectations(t)
}

func TestSummary_UnknownToken(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("GetByToken", mock.Anything, "missing").Return(nil, nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	_, err := svc.Summary(context.Background(), "missing")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestCurrentPuzzle(t *testing.T) {
	m := newServiceMocks()
	m.sessions.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	svc := m.service(adaptive.DefaultConfig(), 10)

	ctx := context.Background()
	session, p, err := svc.StartSession(ctx, "Ada", models.Easy)
	require.NoError(t, err)

	got, current, err := svc.CurrentPuzzle(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, p, current, "puzzle is stable until answered")
}
