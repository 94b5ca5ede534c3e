package config

import (
	"os"
	"strings"
)

// Config holds everything the process reads from the environment.
type Config struct {
	HTTPAddr string
	LogMode  string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// ReviewDatabaseURL selects the review-cache backend: a postgres URL, or
	// empty to use a local SQLite file at ReviewDatabasePath.
	ReviewDatabaseURL  string
	ReviewDatabasePath string

	KnownCorpusPath    string
	ValidityCorpusPath string

	DeepSeekAPIKey  string
	DeepSeekBaseURL string

	TelegramBotToken string

	JWTSecret string

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

// Load reads configuration from the environment. A .env file, when present,
// is loaded by the caller before this runs.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8000"),
		LogMode:  getenv("LOG_MODE", "dev"),

		Neo4jURI:      getenv("NEO4J_URI", "neo4j://localhost:7687"),
		Neo4jUser:     getenv("NEO4J_USERNAME", "neo4j"),
		Neo4jPassword: os.Getenv("NEO4J_PASSWORD"),
		Neo4jDatabase: os.Getenv("NEO4J_DATABASE"),

		ReviewDatabaseURL:  os.Getenv("DATABASE_URL"),
		ReviewDatabasePath: getenv("REVIEW_DB_PATH", "data/review.db"),

		KnownCorpusPath:    getenv("KNOWN_CORPUS_PATH", "data/CET_4_6_edited.txt"),
		ValidityCorpusPath: getenv("VALIDITY_CORPUS_PATH", "data/COCA_20000.txt"),

		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getenv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),

		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
