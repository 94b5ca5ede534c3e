package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/wordwise/internal/ai"
	"github.com/example/wordwise/internal/auth"
	"github.com/example/wordwise/internal/config"
	"github.com/example/wordwise/internal/corpus"
	"github.com/example/wordwise/internal/gap"
	"github.com/example/wordwise/internal/graph"
	"github.com/example/wordwise/internal/http"
	"github.com/example/wordwise/internal/lexical"
	"github.com/example/wordwise/internal/logger"
	"github.com/example/wordwise/internal/notify"
	"github.com/example/wordwise/internal/progression"
	"github.com/example/wordwise/internal/review"
	"github.com/example/wordwise/internal/scheduler"
	"github.com/example/wordwise/internal/tts"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, logg)
	if err != nil {
		logg.Fatal("connect to graph", "error", err)
	}
	defer store.Close(context.Background())

	users := graph.NewUserRepository(store)
	lists := graph.NewWordListRepository(store)
	words := graph.NewWordRepository(store)

	reviewStore, err := review.Connect(cfg.ReviewDatabaseURL, cfg.ReviewDatabasePath)
	if err != nil {
		logg.Fatal("connect to review store", "error", err)
	}
	defer reviewStore.Close()

	corp, err := corpus.Load(cfg.KnownCorpusPath, cfg.ValidityCorpusPath)
	if err != nil {
		logg.Fatal("load reference corpus", "error", err)
	}
	logg.Info("corpus loaded", "known", corp.KnownSize(), "validity", corp.ValiditySize())

	normalizer := lexical.NewNormalizer(lexical.NewProseTagger(), corp.IsValid)
	analyzer := gap.New(corp)
	engine := progression.New(users, logg)
	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	deps := http.Deps{
		Users:      users,
		Lists:      lists,
		Words:      words,
		Engine:     engine,
		Normalizer: normalizer,
		Analyzer:   analyzer,
		Review:     reviewStore,
		JWT:        jwtSvc,
		Log:        logg,
	}

	if cfg.DeepSeekAPIKey != "" {
		client, err := ai.New(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL)
		if err != nil {
			logg.Fatal("init ai client", "error", err)
		}
		deps.AI = client
		deps.Explainer = client
	} else {
		logg.Warn("DEEPSEEK_API_KEY not set, assistant features disabled")
	}
	deps.TTS = tts.New("")

	if cfg.TelegramBotToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			logg.Fatal("init telegram notifier", "error", err)
		}
		sched := scheduler.New(users, notifier, logg)
		if err := sched.Start(); err != nil {
			logg.Fatal("start scheduler", "error", err)
		}
		defer sched.Stop()
	} else {
		logg.Warn("TELEGRAM_BOT_TOKEN not set, reminders disabled")
	}

	server := &stdhttp.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      http.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logg.Info("server started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logg.Fatal("server", "error", err)
		}
	}()

	sig := <-sigChan
	logg.Info("shutting down", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown", "error", err)
	}
}
