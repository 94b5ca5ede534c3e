package graph

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/example/wordwise/pkg/models"
)

// WordListRepository handles graph operations on WordList nodes and their
// OWNS/CONTAINS edges.
type WordListRepository struct {
	store *Store
}

// NewWordListRepository creates a new repository instance.
func NewWordListRepository(store *Store) *WordListRepository {
	return &WordListRepository{store: store}
}

// Create makes a new word list owned by ownerUID, returning its wid. The
// OWNS edge is created in the same transaction as the list node; a missing
// owner yields ErrNotFound.
func (r *WordListRepository) Create(ctx context.Context, name, description, ownerUID string) (string, error) {
	wid := uuid.NewString()
	now := time.Now().UTC().Format(timeLayout)

	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $owner})
			CREATE (wl:WordList {wid: $wid, name: $name, description: $description, created_at: $now})
			CREATE (u)-[:OWNS]->(wl)
			RETURN wl.wid
		`, map[string]any{
			"owner":       ownerUID,
			"wid":         wid,
			"name":        name,
			"description": description,
			"now":         now,
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
			return "", ErrNotFound
		}
		return "", fmt.Errorf("graph: create word list: %w", err)
	}
	return wid, nil
}

// ForUser returns all word lists owned by uid, oldest first.
func (r *WordListRepository) ForUser(ctx context.Context, uid string) ([]models.WordList, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})-[:OWNS]->(wl:WordList)
			RETURN wl.wid AS wid, wl.name AS name, wl.description AS description
			ORDER BY wl.created_at
		`, map[string]any{"uid": uid})
		if err != nil {
			return nil, err
		}
		var lists []models.WordList
		for res.Next(ctx) {
			rec := res.Record()
			lists = append(lists, models.WordList{
				WID:         recordString(rec, "wid"),
				Name:        recordString(rec, "name"),
				Description: recordString(rec, "description"),
			})
		}
		return lists, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("graph: word lists for user: %w", err)
	}
	return result.([]models.WordList), nil
}

// AddWord upserts the Word node for wordText and attaches it to the list.
// Both the node and the CONTAINS edge are MERGEd, so repeated calls with the
// same pair leave exactly one edge. The caller supplies already-normalized
// text.
func (r *WordListRepository) AddWord(ctx context.Context, wordText, wid string) error {
	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (wl:WordList {wid: $wid})
			MERGE (w:Word {text: $text})
			MERGE (wl)-[:CONTAINS]->(w)
			RETURN w.text
		`, map[string]any{"wid": wid, "text": wordText})
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
		return fmt.Errorf("graph: add word to list: %w", err)
	}
	return nil
}

// BatchImport merges a batch of enriched word records into the list in one
// statement. Enrichment fields only overwrite when non-empty, so a bare
// import never erases existing translations.
func (r *WordListRepository) BatchImport(ctx context.Context, wid string, words []models.Word) error {
	if len(words) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(words))
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"text":        w.Text,
			"translation": w.Translation,
			"phonetic":    w.Phonetic,
			"difficulty":  int64(w.Difficulty),
		})
	}

	session := r.store.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (wl:WordList {wid: $wid})
			RETURN wl.wid
		`, map[string]any{"wid": wid})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrNotFound
		}

		res, err = tx.Run(ctx, `
			UNWIND $rows AS row
			MATCH (wl:WordList {wid: $wid})
			MERGE (w:Word {text: row.text})
			SET w.translation = CASE WHEN row.translation = '' THEN w.translation ELSE row.translation END,
			    w.phonetic = CASE WHEN row.phonetic = '' THEN w.phonetic ELSE row.phonetic END,
			    w.difficulty = CASE WHEN row.difficulty = 0 THEN w.difficulty ELSE row.difficulty END
			MERGE (wl)-[:CONTAINS]->(w)
		`, map[string]any{"wid": wid, "rows": rows})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("graph: batch import: %w", err)
	}
	return nil
}

// RandomWord draws a uniformly random word reachable through
// uid -OWNS-> wid -CONTAINS-> word. The selection counts the contained words
// first and then skips to a random offset, so no full sort of the list is
// needed. An empty list yields ErrEmptyResult, a normal outcome.
func (r *WordListRepository) RandomWord(ctx context.Context, uid, wid string) (models.Word, error) {
	session := r.store.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {uid: $uid})-[:OWNS]->(wl:WordList {wid: $wid})-[:CONTAINS]->(w:Word)
			RETURN count(w) AS n
		`, map[string]any{"uid": uid, "wid": wid})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrEmptyResult
		}
		n := recordInt(res.Record(), "n")
		if n == 0 {
			return nil, ErrEmptyResult
		}

		offset := rand.Int64N(n)
		res, err = tx.Run(ctx, `
			MATCH (u:User {uid: $uid})-[:OWNS]->(wl:WordList {wid: $wid})-[:CONTAINS]->(w:Word)
			RETURN w.text AS text,
			       coalesce(w.translation, '') AS translation,
			       coalesce(w.phonetic, '') AS phonetic,
			       coalesce(w.difficulty, 0) AS difficulty
			ORDER BY w.text
			SKIP $offset
			LIMIT 1
		`, map[string]any{"uid": uid, "wid": wid, "offset": offset})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, ErrEmptyResult
		}
		rec := res.Record()
		return models.Word{
			Text:        recordString(rec, "text"),
			Translation: recordString(rec, "translation"),
			Phonetic:    recordString(rec, "phonetic"),
			Difficulty:  int(recordInt(rec, "difficulty")),
		}, nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return models.Word{}, ErrEmptyResult
		}
		return models.Word{}, fmt.Errorf("graph: random word: %w", err)
	}
	return result.(models.Word), nil
}
