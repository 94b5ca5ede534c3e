package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// UserStore is the slice of the graph the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, account, passwordHash, email, avatarURL string) (string, error)
	GetByAccount(ctx context.Context, account string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, props map[string]any) error
}

type AuthHandler struct {
	Users UserStore
	JWT   *auth.JWT
	Log   *logger.Logger
}

type credentialsReq struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Account = strings.TrimSpace(req.Account)
	if req.Account == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "account required and password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	uid, err := h.Users.Create(r.Context(), req.Account, hash, req.Email, "")
	if err != nil {
		if errors.Is(err, graph.ErrConflict) {
			writeError(w, http.StatusConflict, "account already taken")
			return
		}
		h.Log.Error("register", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	token, err := h.JWT.Sign(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": uid, "token": token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Account = strings.TrimSpace(req.Account)
	if req.Account == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "account and password required")
		return
	}

	u, err := h.Users.GetByAccount(r.Context(), req.Account)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Log.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.JWT.Sign(u.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if err := h.Users.UpdateProfile(r.Context(), u.UID, map[string]any{
		"last_login": time.Now().UTC().Format(time.RFC3339Nano),
	}); err != nil {
		h.Log.Warn("record last login", "uid", u.UID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"uid": u.UID, "token": token})
}
