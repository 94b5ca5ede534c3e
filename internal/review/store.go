package review

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/wordwise/pkg/models"
)

// Store is the relational side of the system: a cache of freshly explained
// words for later review, plus per-feature usage counters. It runs on SQLite
// by default and on Postgres when a DATABASE_URL is supplied.
type Store struct {
	db *sqlx.DB
}

// Connect opens the review database. A non-empty databaseURL selects
// Postgres; otherwise a SQLite file at sqlitePath is created as needed.
func Connect(databaseURL, sqlitePath string) (*Store, error) {
	var db *sqlx.DB
	var err error

	if databaseURL != "" {
		db, err = sqlx.Connect("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		if dir := filepath.Dir(sqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.DriverName() == "postgres" {
		serial = "SERIAL PRIMARY KEY"
	}

	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS new_words (
			id %s,
			word TEXT NOT NULL UNIQUE,
			explanations TEXT NOT NULL,
			insert_time TIMESTAMP NOT NULL
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create new_words table: %v", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS usage_stats (
			feature TEXT PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create usage_stats table: %v", err)
	}
	return nil
}

// SaveNewWord caches a word and its explanation for review. Re-saving a word
// refreshes the explanation and the timestamp.
func (s *Store) SaveNewWord(word, explanation string) error {
	query := s.db.Rebind(`
		INSERT INTO new_words (word, explanations, insert_time)
		VALUES (?, ?, ?)
		ON CONFLICT (word) DO UPDATE
		SET explanations = excluded.explanations, insert_time = excluded.insert_time
	`)
	_, err := s.db.Exec(query, word, explanation, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save new word: %v", err)
	}
	return nil
}

// GetNewWord returns the cached explanation for word, or ok=false when the
// word has not been cached.
func (s *Store) GetNewWord(word string) (models.NewWord, bool, error) {
	var nw models.NewWord
	query := s.db.Rebind("SELECT word, explanations, insert_time FROM new_words WHERE word = ?")
	err := s.db.Get(&nw, query, word)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewWord{}, false, nil
		}
		return models.NewWord{}, false, fmt.Errorf("failed to get new word: %v", err)
	}
	return nw, true, nil
}

// RecentNewWords returns the most recently cached words, newest first.
func (s *Store) RecentNewWords(limit int) ([]models.NewWord, error) {
	if limit <= 0 {
		limit = 20
	}
	var words []models.NewWord
	query := s.db.Rebind("SELECT word, explanations, insert_time FROM new_words ORDER BY insert_time DESC LIMIT ?")
	if err := s.db.Select(&words, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent new words: %v", err)
	}
	return words, nil
}

// IncrementUsage bumps the counter for a feature ("chat", "translate", ...).
func (s *Store) IncrementUsage(feature string) error {
	query := s.db.Rebind(`
		INSERT INTO usage_stats (feature, count)
		VALUES (?, 1)
		ON CONFLICT (feature) DO UPDATE SET count = usage_stats.count + 1
	`)
	_, err := s.db.Exec(query, feature)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %v", err)
	}
	return nil
}

// UsageStats returns all per-feature counters, ordered by feature name.
func (s *Store) UsageStats() ([]models.UsageStat, error) {
	var stats []models.UsageStat
	err := s.db.Select(&stats, "SELECT feature, count FROM usage_stats ORDER BY feature")
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %v", err)
	}
	return stats, nil
}
