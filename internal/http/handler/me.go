package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// ProfileStore covers the per-user endpoints.
type ProfileStore interface {
	Stats(ctx context.Context, uid string) (models.UserStats, error)
	UpdateSettings(ctx context.Context, uid string, update models.SettingsUpdate) error
}

// CheckInService records study days.
type CheckInService interface {
	CheckIn(ctx context.Context, uid string) (models.CheckInResult, error)
}

type MeHandler struct {
	Users  ProfileStore
	Engine CheckInService
	Log    *logger.Logger
}

func (h *MeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	stats, err := h.Users.Stats(r.Context(), uid)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("stats", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (h *MeHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var update models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if update.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no settings given")
		return
	}
	if update.ReminderTime != nil && !reminderTimePattern.MatchString(*update.ReminderTime) {
		writeError(w, http.StatusBadRequest, "reminder_time must be HH:MM")
		return
	}
	if update.StudyGoal != nil && *update.StudyGoal < 0 {
		writeError(w, http.StatusBadRequest, "study_goal must not be negative")
		return
	}

	if err := h.Users.UpdateSettings(r.Context(), uid, update); err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("update settings", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MeHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	result, err := h.Engine.CheckIn(r.Context(), uid)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("check in", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
