package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/importer"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/pkg/models"
)

// ListStore is the slice of the graph the word-list endpoints need.
type ListStore interface {
	Create(ctx context.Context, name, description, ownerUID string) (string, error)
	ForUser(ctx context.Context, uid string) ([]models.WordList, error)
	AddWord(ctx context.Context, wordText, wid string) error
	BatchImport(ctx context.Context, wid string, words []models.Word) error
}

// WordDrawer draws the next study word.
type WordDrawer interface {
	NextWord(ctx context.Context, uid, wid string) (models.Word, bool, error)
}

type WordListHandler struct {
	Lists  ListStore
	Engine WordDrawer
	Log    *logger.Logger
}

type createListReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *WordListHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createListReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	wid, err := h.Lists.Create(r.Context(), req.Name, req.Description, uid)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("create word list", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusCreated, models.WordList{WID: wid, Name: req.Name, Description: req.Description})
}

func (h *WordListHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	lists, err := h.Lists.ForUser(r.Context(), uid)
	if err != nil {
		h.Log.Error("list word lists", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if lists == nil {
		lists = []models.WordList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

type addWordReq struct {
	Word string `json:"word"`
}

func (h *WordListHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	wid := chi.URLParam(r, "wid")

	var req addWordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word required")
		return
	}

	if err := h.Lists.AddWord(r.Context(), word, wid); err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "word list not found")
			return
		}
		h.Log.Error("add word", "wid", wid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import accepts a multipart upload ("file") and merges its word records
// into the list.
func (h *WordListHandler) Import(w http.ResponseWriter, r *http.Request) {
	wid := chi.URLParam(r, "wid")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	result, err := parseUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Lists.BatchImport(r.Context(), wid, result.Words); err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			writeError(w, http.StatusNotFound, "word list not found")
			return
		}
		h.Log.Error("import words", "wid", wid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"imported": len(result.Words),
		"skipped":  result.Skipped,
		"errors":   result.Errors,
	})
}

// parseUpload runs the importer over an uploaded file. Binary formats need a
// real file on disk, so those are spooled to a temp file first.
func parseUpload(file io.Reader, filename string) (*importer.Result, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt":
		return importer.FromTXT(file)
	case ".csv":
		return importer.FromCSV(file)
	case ".json":
		return importer.FromJSON(file)
	default:
		tmp, err := os.CreateTemp("", "wordwise-import-*"+ext)
		if err != nil {
			return nil, errors.New("server error")
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			return nil, errors.New("failed to read upload")
		}
		tmp.Close()
		return importer.FromFile(tmp.Name())
	}
}

func (h *WordListHandler) Random(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	wid := chi.URLParam(r, "wid")

	word, ok, err := h.Engine.NextWord(r.Context(), uid, wid)
	if err != nil {
		h.Log.Error("random word", "uid", uid, "wid", wid, "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "word list is empty")
		return
	}
	writeJSON(w, http.StatusOK, word)
}
