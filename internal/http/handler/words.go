package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/logger"
)

// MasteryService flips a word's learning state for a user.
type MasteryService interface {
	MarkMastered(ctx context.Context, uid, wordText string) error
	MarkLearning(ctx context.Context, uid, wordText string) error
}

type WordHandler struct {
	Engine MasteryService
	Log    *logger.Logger
}

func (h *WordHandler) Mastered(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Engine.MarkMastered)
}

func (h *WordHandler) Learning(w http.ResponseWriter, r *http.Request) {
	h.mark(w, r, h.Engine.MarkLearning)
}

func (h *WordHandler) mark(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) error) {
	uid, _ := auth.UserIDFromContext(r.Context())
	word := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "text")))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word required")
		return
	}

	if err := op(r.Context(), uid, word); err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("mark word", "uid", uid, "word", word, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
