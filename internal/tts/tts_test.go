package tts

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSynthesize(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hello world" {
			t.Errorf("q = %q, want %q", got, "hello world")
		}
		if got := r.URL.Query().Get("tl"); got != "en" {
			t.Errorf("tl = %q, want en", got)
		}
		w.Write(mp3)
	}))
	defer srv.Close()

	client := New(srv.URL)
	audio, err := client.Synthesize(context.Background(), "hello world", "")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !bytes.Equal(audio, mp3) {
		t.Errorf("audio = %v, want %v", audio, mp3)
	}
}

func TestSynthesizeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(srv.URL)
	if _, err := client.Synthesize(context.Background(), "hi", "en"); !errors.Is(err, ErrSynthesis) {
		t.Errorf("got %v, want ErrSynthesis", err)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	client := New("http://unused.invalid")
	if _, err := client.Synthesize(context.Background(), "", "en"); err == nil {
		t.Fatal("expected error for empty text")
	}
}
