package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/example/wordwise/internal/logger"
)

// Store is the knowledge graph: User, WordList and Word nodes connected by
// OWNS, CONTAINS, MASTERED and LEARNING edges. Every operation is one managed
// transaction; the uniqueness constraints installed at connect time back the
// graph's identity invariants.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

// Connect opens the Neo4j driver, verifies connectivity and installs the
// schema constraints.
func Connect(ctx context.Context, uri, user, password, database string, log *logger.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""), func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = 50
		cfg.SocketConnectTimeout = 10 * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("graph: init driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph: verify connectivity: %w", err)
	}

	s := &Store{driver: driver, database: database, log: log.With("component", "graph")}
	if err := s.ensureSchema(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}
	return s, nil
}

// Close releases the driver and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

// ensureSchema installs the uniqueness constraints the data model relies on:
// deduplicated Word nodes, unique uid/wid identifiers and unique accounts.
func (s *Store) ensureSchema(ctx context.Context) error {
	constraints := []string{
		`CREATE CONSTRAINT user_uid_unique IF NOT EXISTS FOR (u:User) REQUIRE u.uid IS UNIQUE`,
		`CREATE CONSTRAINT user_account_unique IF NOT EXISTS FOR (u:User) REQUIRE u.account IS UNIQUE`,
		`CREATE CONSTRAINT wordlist_wid_unique IF NOT EXISTS FOR (wl:WordList) REQUIRE wl.wid IS UNIQUE`,
		`CREATE CONSTRAINT word_text_unique IF NOT EXISTS FOR (w:Word) REQUIRE w.text IS UNIQUE`,
	}

	session := s.writeSession(ctx)
	defer session.Close(ctx)

	for _, stmt := range constraints {
		res, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("graph: create constraint: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("graph: create constraint: %w", err)
		}
	}
	return nil
}

func (s *Store) readSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
}

func (s *Store) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
}
