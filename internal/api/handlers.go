package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/errors"
	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/services"
)

type Server struct {
	DB             *db.DB
	SessionService services.SessionService
	StatsService   services.StatsService
}

type startSessionRequest struct {
	PlayerName string `json:"player_name"`
	Difficulty string `json:"difficulty"`
}

type submitAnswerRequest struct {
	Answer      *int     `json:"answer"`
	TimeSeconds *float64 `json:"time_seconds"`
}

// puzzleView is the client-facing shape of a puzzle; the answer stays
// server-side.
type puzzleView struct {
	Question   string            `json:"question"`
	Difficulty models.Difficulty `json:"difficulty"`
}

func viewPuzzle(p models.Puzzle) puzzleView {
	return puzzleView{Question: p.Question(), Difficulty: p.Difficulty}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	difficulty := models.Easy
	if req.Difficulty != "" {
		var err error
		if difficulty, err = models.ParseDifficulty(req.Difficulty); err != nil {
			handleError(w, r, errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'"))
			return
		}
	}

	session, first, err := s.SessionService.StartSession(r.Context(), req.PlayerName, difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("session created: token=%s", session.Token)
	respondJSON(w, r, http.StatusCreated, map[string]any{
		"session": session,
		"puzzle":  viewPuzzle(first),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	session, current, err := s.SessionService.CurrentPuzzle(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"session": session,
		"puzzle":  viewPuzzle(current),
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Answer == nil {
		handleError(w, r, errors.NewValidationError("answer", "required"))
		return
	}
	if req.TimeSeconds == nil {
		handleError(w, r, errors.NewValidationError("time_seconds", "required"))
		return
	}

	result, err := s.SessionService.SubmitAnswer(r.Context(), token, *req.Answer, *req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	summary, err := s.SessionService.EndSession(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	summary, err := s.SessionService.Summary(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleSessionAdaptations(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	adaptations, err := s.SessionService.Adaptations(r.Context(), token)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"adaptations": adaptations,
		"count":       len(adaptations),
	})
}
