package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository"
	"github.com/mathadv/quiz/internal/repository/sqlite"
	"github.com/mathadv/quiz/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) insertSession(token string, difficulty models.Difficulty, completed bool) int64 {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Session{
		Token:             token,
		PlayerName:        "Learner",
		StartDifficulty:   models.Easy,
		CurrentDifficulty: difficulty,
	})
	s.Require().NoError(err)

	if completed {
		session, err := s.repo.Get(ctx, id)
		s.Require().NoError(err)
		now := time.Now()
		session.CompletedAt = &now
		s.Require().NoError(s.repo.Update(ctx, *session))
	}
	return id
}

func (s *SessionRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Session{
		Token:             "tok-1",
		PlayerName:        "Ada",
		StartDifficulty:   models.Easy,
		CurrentDifficulty: models.Medium,
		Score:             3,
		AttemptCount:      5,
		TotalTimeSeconds:  42.5,
	})
	s.Require().NoError(err)
	s.Require().Positive(id)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("tok-1", got.Token)
	s.Equal("Ada", got.PlayerName)
	s.Equal(models.Easy, got.StartDifficulty)
	s.Equal(models.Medium, got.CurrentDifficulty)
	s.Equal(3, got.Score)
	s.Equal(5, got.AttemptCount)
	s.InDelta(42.5, got.TotalTimeSeconds, 1e-9)
	s.Nil(got.CompletedAt)
	s.False(got.CreatedAt.IsZero())
}

func (s *SessionRepositorySuite) TestGetByToken() {
	s.insertSession("tok-find-me", models.Easy, false)

	got, err := s.repo.GetByToken(context.Background(), "tok-find-me")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("tok-find-me", got.Token)
}

func (s *SessionRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Nil(got)

	got, err = s.repo.GetByToken(context.Background(), "no-such-token")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *SessionRepositorySuite) TestUpdate() {
	ctx := context.Background()
	id := s.insertSession("tok-update", models.Easy, false)

	session, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)

	now := time.Now()
	session.CurrentDifficulty = models.Hard
	session.Score = 7
	session.AttemptCount = 10
	session.TotalTimeSeconds = 99.5
	session.CompletedAt = &now
	s.Require().NoError(s.repo.Update(ctx, *session))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(models.Hard, got.CurrentDifficulty)
	s.Equal(7, got.Score)
	s.Equal(10, got.AttemptCount)
	s.Require().NotNil(got.CompletedAt)
	s.True(got.Completed())
}

func (s *SessionRepositorySuite) TestInsertDuplicateTokenFails() {
	s.insertSession("tok-dup", models.Easy, false)

	_, err := s.repo.Insert(context.Background(), models.Session{
		Token:             "tok-dup",
		PlayerName:        "Other",
		StartDifficulty:   models.Easy,
		CurrentDifficulty: models.Easy,
	})
	s.Error(err)
}

func (s *SessionRepositorySuite) TestListAndCountWithFilters() {
	ctx := context.Background()
	s.insertSession("tok-a", models.Easy, true)
	s.insertSession("tok-b", models.Medium, false)
	s.insertSession("tok-c", models.Medium, true)

	all, err := s.repo.List(ctx, models.SessionFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	completed, err := s.repo.List(ctx, models.SessionFilter{CompletedOnly: true})
	s.Require().NoError(err)
	s.Len(completed, 2)

	medium := models.Medium
	filtered, err := s.repo.List(ctx, models.SessionFilter{Difficulty: &medium})
	s.Require().NoError(err)
	s.Len(filtered, 2)

	both, err := s.repo.List(ctx, models.SessionFilter{Difficulty: &medium, CompletedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.Equal("tok-c", both[0].Token)

	count, err := s.repo.Count(ctx, models.SessionFilter{Difficulty: &medium})
	s.Require().NoError(err)
	s.Equal(2, count)

	count, err = s.repo.Count(ctx, models.SessionFilter{})
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *SessionRepositorySuite) TestListPaginationAndOrdering() {
	ctx := context.Background()
	for i, token := range []string{"tok-1", "tok-2", "tok-3"} {
		_, err := s.repo.Insert(ctx, models.Session{
			Token:             token,
			PlayerName:        "Learner",
			StartDifficulty:   models.Easy,
			CurrentDifficulty: models.Easy,
			Score:             i,
		})
		s.Require().NoError(err)
	}

	page, err := s.repo.List(ctx, models.SessionFilter{
		OrderBy:  "score",
		OrderDir: "asc",
		Limit:    2,
	})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("tok-1", page[0].Token)

	page, err = s.repo.List(ctx, models.SessionFilter{
		OrderBy:  "score",
		OrderDir: "asc",
		Limit:    2,
		Offset:   2,
	})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("tok-3", page[0].Token)
}

func (s *SessionRepositorySuite) TestListIgnoresUnknownOrderColumn() {
	s.insertSession("tok-x", models.Easy, false)

	// Unknown columns fall back to created_at rather than reaching the
	// database.
	sessions, err := s.repo.List(context.Background(), models.SessionFilter{OrderBy: "token; DROP TABLE sessions"})
	s.Require().NoError(err)
	s.Len(sessions, 1)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
