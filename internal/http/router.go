package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/config"
	"github.com/example/wordwise/internal/gap"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/http/handler"
	mw "github.com/example/wordwise/internal/http/middleware"
	"github.com/example/wordwise/internal/lexical"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/internal/progression"
)

// Deps bundles everything the API surface is built from. AI, TTS and Review
// are optional; their routes answer 503 when absent.
type Deps struct {
	Users      *graph.UserRepository
	Lists      *graph.WordListRepository
	Words      *graph.WordRepository
	Engine     *progression.Engine
	Normalizer *lexical.Normalizer
	Analyzer   *gap.Analyzer
	AI         handler.Chatter
	Explainer  handler.Explainer
	TTS        handler.Synthesizer
	Review     handler.ReviewCache
	JWT        *auth.JWT
	Log        *logger.Logger
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Users: d.Users, JWT: d.JWT, Log: d.Log}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{Users: d.Users, Engine: d.Engine, Log: d.Log}
	wordLists := &handler.WordListHandler{Lists: d.Lists, Engine: d.Engine, Log: d.Log}
	words := &handler.WordHandler{Engine: d.Engine, Log: d.Log}
	documents := &handler.DocumentHandler{
		Normalizer: d.Normalizer,
		Analyzer:   d.Analyzer,
		Words:      d.Words,
		AI:         d.Explainer,
		Review:     d.Review,
		Log:        d.Log,
	}
	assistant := &handler.AssistantHandler{AI: d.AI, TTS: d.TTS, Review: d.Review, Log: d.Log}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Route("/me", func(r chi.Router) {
			r.Get("/stats", me.Stats)
			r.Patch("/settings", me.UpdateSettings)
			r.Post("/checkin", me.CheckIn)
		})

		r.Route("/wordlists", func(r chi.Router) {
			r.Post("/", wordLists.Create)
			r.Get("/", wordLists.List)
			r.Post("/{wid}/words", wordLists.AddWord)
			r.Post("/{wid}/import", wordLists.Import)
			r.Get("/{wid}/random", wordLists.Random)
		})

		r.Post("/words/{text}/mastered", words.Mastered)
		r.Post("/words/{text}/learning", words.Learning)

		r.Post("/documents/analyze", documents.Analyze)
		r.Get("/review/words", assistant.ReviewWords)

		r.Post("/chat", assistant.Chat)
		r.Post("/translate", assistant.Translate)
		r.Post("/generate", assistant.Generate)
		r.Post("/synthesize", assistant.Synthesize)
		r.Get("/usage", assistant.Usage)
	})

	return r
}
