package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/wordwise/internal/ai"
	"github.com/example/wordwise/internal/logger"
)

type fakeChatter struct {
	reply    string
	err      error
	lastMode ai.Mode
}

func (f *fakeChatter) Chat(ctx context.Context, prompt string, mode ai.Mode, language string) (string, error) {
	f.lastMode = mode
	return f.reply, f.err
}

type fakeTTS struct {
	audio    []byte
	err      error
	lastText string
}

func (f *fakeTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	f.lastText = text
	return f.audio, f.err
}

func testAssistantHandler(t *testing.T, chatter Chatter, tts Synthesizer, review ReviewCache) *AssistantHandler {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return &AssistantHandler{AI: chatter, TTS: tts, Review: review, Log: log}
}

func TestChatCountsUsage(t *testing.T) {
	chatter := &fakeChatter{reply: "hello there"}
	review := newFakeReview()
	h := testAssistantHandler(t, chatter, nil, review)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["reply"] != "hello there" {
		t.Errorf("reply = %q", resp["reply"])
	}
	if chatter.lastMode != ai.ModeDialogue {
		t.Errorf("mode = %q, want dialogue", chatter.lastMode)
	}
	if review.usage["chat"] != 1 {
		t.Errorf("chat usage = %d, want 1", review.usage["chat"])
	}
}

func TestTranslateUsesTranslateMode(t *testing.T) {
	chatter := &fakeChatter{reply: "你好"}
	h := testAssistantHandler(t, chatter, nil, newFakeReview())

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"prompt": "hello"}`))
	rec := httptest.NewRecorder()
	h.Translate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if chatter.lastMode != ai.ModeTranslate {
		t.Errorf("mode = %q, want translate", chatter.lastMode)
	}
}

func TestGenerateUsesGenerateMode(t *testing.T) {
	chatter := &fakeChatter{reply: "une phrase"}
	review := newFakeReview()
	h := testAssistantHandler(t, chatter, nil, review)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt": "a sentence", "language": "French"}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if chatter.lastMode != ai.ModeGenerate {
		t.Errorf("mode = %q, want generating", chatter.lastMode)
	}
	if review.usage["generate"] != 1 {
		t.Errorf("generate usage = %d, want 1", review.usage["generate"])
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	chatter := &fakeChatter{err: ai.ErrExternalService}
	h := testAssistantHandler(t, chatter, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestChatWithoutClient(t *testing.T) {
	h := testAssistantHandler(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"prompt": "hi"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	tts := &fakeTTS{audio: []byte{0xFF, 0xFB}}
	review := newFakeReview()
	h := testAssistantHandler(t, nil, tts, review)

	req := httptest.NewRequest(http.MethodPost, "/synthesize", strings.NewReader(`{"text": "hello"}`))
	rec := httptest.NewRecorder()
	h.Synthesize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content type = %q", ct)
	}
	if review.usage["synthesize"] != 1 {
		t.Errorf("synthesize usage = %d, want 1", review.usage["synthesize"])
	}
}

func TestSynthesizeTranslatesFirst(t *testing.T) {
	chatter := &fakeChatter{reply: "bonjour"}
	tts := &fakeTTS{audio: []byte{0xFF, 0xFB}}
	h := testAssistantHandler(t, chatter, tts, newFakeReview())

	req := httptest.NewRequest(http.MethodPost, "/synthesize", strings.NewReader(`{"text": "hello", "language": "fr"}`))
	rec := httptest.NewRecorder()
	h.Synthesize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if chatter.lastMode != ai.ModeSynthesize {
		t.Errorf("mode = %q, want synthesize", chatter.lastMode)
	}
	if tts.lastText != "bonjour" {
		t.Errorf("spoken text = %q, want translation", tts.lastText)
	}
}

func TestSynthesizeFallsBackOnModelFailure(t *testing.T) {
	chatter := &fakeChatter{err: ai.ErrExternalService}
	tts := &fakeTTS{audio: []byte{0xFF, 0xFB}}
	h := testAssistantHandler(t, chatter, tts, newFakeReview())

	req := httptest.NewRequest(http.MethodPost, "/synthesize", strings.NewReader(`{"text": "hello", "language": "fr"}`))
	rec := httptest.NewRecorder()
	h.Synthesize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if tts.lastText != "hello" {
		t.Errorf("spoken text = %q, want raw input", tts.lastText)
	}
}

func TestUsageEndpoint(t *testing.T) {
	review := newFakeReview()
	review.usage["chat"] = 7
	h := testAssistantHandler(t, nil, nil, review)

	req := httptest.NewRequest(http.MethodGet, "/usage", nil)
	rec := httptest.NewRecorder()
	h.Usage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"chat"`) || !strings.Contains(body, "7") {
		t.Errorf("body = %s", body)
	}
}
