package api

import (
	"net/http"
	"strconv"

	"github.com/mathadv/quiz/internal/models"
)

func (s *Server) handleDifficultyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.DifficultyStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"stats": stats,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.SessionFilter{
		CompletedOnly: q.Get("completed") == "true",
		OrderBy:       q.Get("order_by"),
		OrderDir:      q.Get("order_dir"),
		Limit:         20,
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 100 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}
	if d := q.Get("difficulty"); d != "" {
		difficulty, err := models.ParseDifficulty(d)
		if err == nil {
			filter.Difficulty = &difficulty
		}
	}

	sessions, total, err := s.StatsService.ListSessions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"sessions": sessions,
		"total":    total,
	})
}
