package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// WordRepository handles per-user mastery state: the MASTERED and LEARNING
// edges between User and Word nodes.
type WordRepository struct {
	store *Store
}

// NewWordRepository creates a new repository instance.
func NewWordRepository(store *Store) *WordRepository {
	return &WordRepository{store: store}
}

// MarkMastered records that the user has mastered the word. The MASTERED edge
// is merged and any LEARNING edge for the same pair is deleted in the same
// statement, so the two states can never coexist. The word node is merged so
// mastery can be declared for words never added to a list.
func (r *WordRepository) MarkMastered(ctx context.Context, uid, wordText string) error {
	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			MERGE (w:Word {text: $text})
			MERGE (u)-[m:MASTERED]->(w)
			ON CREATE SET m.since = $now
			WITH u, w
			OPTIONAL MATCH (u)-[l:LEARNING]->(w)
			DELETE l
			RETURN w.text
		`, map[string]any{
			"uid":  uid,
			"text": wordText,
			"now":  time.Now().UTC().Format(timeLayout),
		})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("graph: mark mastered: %w", err)
	}
	return nil
}

// MarkLearning records that the user is studying the word. A word the user
// has already mastered is left alone; mastery outranks learning.
func (r *WordRepository) MarkLearning(ctx context.Context, uid, wordText string) error {
	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})
			MERGE (w:Word {text: $text})
			WITH u, w
			WHERE NOT (u)-[:MASTERED]->(w)
			MERGE (u)-[l:LEARNING]->(w)
			ON CREATE SET l.since = $now
			RETURN w.text
		`, map[string]any{
			"uid":  uid,
			"text": wordText,
			"now":  time.Now().UTC().Format(timeLayout),
		})
		if err != nil {
			return nil, err
		}
		// No row also covers the already-mastered case, which is not an
		// error. Distinguish a missing user separately.
		if res.Next(ctx) {
			return nil, nil
		}
		res, err = tx.Run(ctx, `MATCH (u:User {uid: $uid}) RETURN u.uid`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("graph: mark learning: %w", err)
	}
	return nil
}

// Mastered returns every word the user has mastered, as a set keyed by the
// normalized word text. Gap analysis consumes this directly.
func (r *WordRepository) Mastered(ctx context.Context, uid string) (map[string]bool, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})-[:MASTERED]->(w:Word)
			RETURN w.text AS text
		`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool)
		for res.Next(ctx) {
			set[recordString(res.Record(), "text")] = true
		}
		return set, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("graph: mastered words: %w", err)
	}
	return result.(map[string]bool), nil
}

// Learning returns the words the user has flagged as in progress, sorted by
// when the LEARNING edge was created, newest first.
func (r *WordRepository) Learning(ctx context.Context, uid string) ([]string, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})-[l:LEARNING]->(w:Word)
			RETURN w.text AS text
			ORDER BY l.since DESC
		`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		var words []string
		for res.Next(ctx) {
			words = append(words, recordString(res.Record(), "text"))
		}
		return words, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("graph: learning words: %w", err)
	}
	return result.([]string), nil
}
