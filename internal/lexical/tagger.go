package lexical

import (
	"sync"

	prose "github.com/jdkato/prose/v2"
)

// ProseTagger tags words with the prose perceptron tagger, one word per
// document so a token is judged on its own form only. Tag results are cached;
// the cache makes repeated documents cheap and keeps output deterministic.
type ProseTagger struct {
	mu    sync.Mutex
	cache map[string]Category
}

// NewProseTagger returns a ready tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{cache: make(map[string]Category)}
}

// Categorize returns the coarse category for word. Tagging failures fall back
// to Verb, the same default used for unrecognized tags.
func (t *ProseTagger) Categorize(word string) Category {
	t.mu.Lock()
	if cat, ok := t.cache[word]; ok {
		t.mu.Unlock()
		return cat
	}
	t.mu.Unlock()

	cat := Verb
	doc, err := prose.NewDocument(word,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err == nil {
		if toks := doc.Tokens(); len(toks) > 0 {
			cat = CategoryForTag(toks[0].Tag)
		}
	}

	t.mu.Lock()
	t.cache[word] = cat
	t.mu.Unlock()
	return cat
}
