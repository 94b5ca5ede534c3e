package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/gap"
	"github.com/example/wordwise/internal/lexical"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// MasteredProvider supplies a user's mastered set for analysis.
type MasteredProvider interface {
	Mastered(ctx context.Context, uid string) (map[string]bool, error)
}

// Explainer generates learner-facing explanations and document judgements.
type Explainer interface {
	ExplainWord(ctx context.Context, word string) (string, error)
	DocumentDifficulty(ctx context.Context, text string, gapWords []string) (string, error)
	AnswerDocumentQuestion(ctx context.Context, document, question string) (string, error)
}

// ReviewCache stores generated explanations for later recall.
type ReviewCache interface {
	GetNewWord(word string) (models.NewWord, bool, error)
	SaveNewWord(word, explanation string) error
	RecentNewWords(limit int) ([]models.NewWord, error)
	IncrementUsage(feature string) error
	UsageStats() ([]models.UsageStat, error)
}

// explainLimit caps how many gap words one analysis sends to the model.
const explainLimit = 10

type DocumentHandler struct {
	Normalizer *lexical.Normalizer
	Analyzer   *gap.Analyzer
	Words      MasteredProvider
	AI         Explainer
	Review     ReviewCache
	Log        *logger.Logger
}

type analyzeReq struct {
	Text     string `json:"text"`
	Explain  bool   `json:"explain"`
	Question string `json:"question"`
}

type analyzeResp struct {
	models.GapReport
	Explanations map[string]string `json:"explanations,omitempty"`
	Difficulty   string            `json:"difficulty,omitempty"`
	Answer       string            `json:"answer,omitempty"`
}

// Analyze normalizes the document, reports the vocabulary gap against the
// reference corpus and the user's mastered set, and optionally explains the
// gap words.
func (h *DocumentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	mastered, err := h.Words.Mastered(r.Context(), uid)
	if err != nil {
		h.Log.Error("load mastered set", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	report := h.Analyzer.Analyze(h.Normalizer.Normalize(req.Text), mastered)

	resp := analyzeResp{GapReport: report}
	if h.AI != nil {
		if req.Explain {
			resp.Explanations = h.explain(r.Context(), report.GapWords)
			if text, err := h.AI.DocumentDifficulty(r.Context(), req.Text, report.GapWords); err == nil {
				resp.Difficulty = text
			} else {
				h.Log.Warn("judge difficulty", "error", err)
			}
		}
		if strings.TrimSpace(req.Question) != "" {
			if answer, err := h.AI.AnswerDocumentQuestion(r.Context(), req.Text, req.Question); err == nil {
				resp.Answer = answer
			} else {
				h.Log.Warn("answer document question", "error", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// explain resolves explanations for the first few gap words, serving cache
// hits from the review store and saving fresh ones into it. A model failure
// skips the word rather than failing the analysis.
func (h *DocumentHandler) explain(ctx context.Context, gapWords []string) map[string]string {
	explanations := make(map[string]string)
	for _, word := range gapWords {
		if len(explanations) == explainLimit {
			break
		}
		if h.Review != nil {
			if cached, ok, err := h.Review.GetNewWord(word); err == nil && ok {
				explanations[word] = cached.Explanation
				continue
			}
		}
		text, err := h.AI.ExplainWord(ctx, word)
		if err != nil {
			h.Log.Warn("explain gap word", "word", word, "error", err)
			continue
		}
		explanations[word] = text
		if h.Review != nil {
			if err := h.Review.SaveNewWord(word, text); err != nil {
				h.Log.Warn("cache explanation", "word", word, "error", err)
			}
		}
	}
	return explanations
}
