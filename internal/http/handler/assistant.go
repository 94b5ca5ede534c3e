package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/wordwise/internal/ai"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// Chatter is the model-backed conversational surface.
type Chatter interface {
	Chat(ctx context.Context, prompt string, mode ai.Mode, language string) (string, error)
}

// Synthesizer turns text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type AssistantHandler struct {
	AI     Chatter
	TTS    Synthesizer
	Review ReviewCache
	Log    *logger.Logger
}

type chatReq struct {
	Prompt   string `json:"prompt"`
	Language string `json:"language"`
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.chat(w, r, ai.ModeDialogue, "chat")
}

func (h *AssistantHandler) Translate(w http.ResponseWriter, r *http.Request) {
	h.chat(w, r, ai.ModeTranslate, "translate")
}

// Generate renders the prompt into the user's language.
func (h *AssistantHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.chat(w, r, ai.ModeGenerate, "generate")
}

func (h *AssistantHandler) chat(w http.ResponseWriter, r *http.Request, mode ai.Mode, feature string) {
	if h.AI == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var req chatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt required")
		return
	}

	reply, err := h.AI.Chat(r.Context(), req.Prompt, mode, req.Language)
	if err != nil {
		if errors.Is(err, ai.ErrExternalService) {
			writeError(w, http.StatusBadGateway, "assistant is unavailable, try again later")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.countUsage(feature)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type synthesizeReq struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Synthesize returns MP3 audio for the given text. When the model is
// configured the text is first rendered into the user's language; a model
// failure falls back to speaking the raw text.
func (h *AssistantHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if h.TTS == nil {
		writeError(w, http.StatusServiceUnavailable, "speech synthesis is not configured")
		return
	}

	var req synthesizeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	speech := req.Text
	if h.AI != nil {
		translated, err := h.AI.Chat(r.Context(), req.Text, ai.ModeSynthesize, req.Language)
		if err != nil {
			h.Log.Warn("translate before synthesis", "error", err)
		} else {
			speech = translated
		}
	}

	audio, err := h.TTS.Synthesize(r.Context(), speech, req.Language)
	if err != nil {
		h.Log.Error("synthesize", "error", err)
		writeError(w, http.StatusBadGateway, "speech synthesis is unavailable, try again later")
		return
	}

	h.countUsage("synthesize")
	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(audio)
}

// ReviewWords returns recently cached explanations, newest first. The limit
// query parameter caps the count.
func (h *AssistantHandler) ReviewWords(w http.ResponseWriter, r *http.Request) {
	if h.Review == nil {
		writeError(w, http.StatusServiceUnavailable, "review store is not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	words, err := h.Review.RecentNewWords(limit)
	if err != nil {
		h.Log.Error("review words", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if words == nil {
		words = []models.NewWord{}
	}
	writeJSON(w, http.StatusOK, words)
}

func (h *AssistantHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if h.Review == nil {
		writeError(w, http.StatusServiceUnavailable, "review store is not configured")
		return
	}

	stats, err := h.Review.UsageStats()
	if err != nil {
		h.Log.Error("usage stats", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if stats == nil {
		stats = []models.UsageStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AssistantHandler) countUsage(feature string) {
	if h.Review == nil {
		return
	}
	if err := h.Review.IncrementUsage(feature); err != nil {
		h.Log.Warn("count usage", "feature", feature, "error", err)
	}
}
