package lexical

import (
	"reflect"
	"testing"
)

// stubTagger returns a fixed category per word, Verb otherwise.
type stubTagger map[string]Category

func (s stubTagger) Categorize(word string) Category {
	if cat, ok := s[word]; ok {
		return cat
	}
	return Verb
}

func collect(seq func(func(Token) bool)) []Token {
	var out []Token
	seq(func(t Token) bool {
		out = append(out, t)
		return true
	})
	return out
}

func TestNormalizeTokenization(t *testing.T) {
	n := NewNormalizer(stubTagger{}, nil)

	got := collect(n.Normalize("The cat, the CAT! x 42 xyzzy123 ok"))

	var surfaces []string
	for _, tok := range got {
		surfaces = append(surfaces, tok.Surface)
	}
	// "x" is a single letter, "42" has no letters, "xyzzy123" is a mixed
	// token: all discarded.
	want := []string{"the", "cat", "the", "cat", "ok"}
	if !reflect.DeepEqual(surfaces, want) {
		t.Errorf("surfaces = %v, want %v", surfaces, want)
	}
}

func TestNormalizeLemmas(t *testing.T) {
	tagger := stubTagger{
		"created": Verb,
		"trees":   Noun,
	}
	n := NewNormalizer(tagger, nil)

	got := collect(n.Normalize("created trees"))
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
	if got[0].Lemma != "create" || got[0].Category != Verb {
		t.Errorf("token 0 = %+v, want lemma create/verb", got[0])
	}
	if got[1].Lemma != "tree" || got[1].Category != Noun {
		t.Errorf("token 1 = %+v, want lemma tree/noun", got[1])
	}
}

func TestNormalizeIsRestartable(t *testing.T) {
	n := NewNormalizer(stubTagger{}, nil)
	seq := n.Normalize("one two three")

	first := collect(seq)
	second := collect(seq)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass %v differs from first %v", second, first)
	}
	if len(first) != 3 {
		t.Errorf("expected 3 tokens, got %d", len(first))
	}
}

func TestNormalizeEarlyStop(t *testing.T) {
	n := NewNormalizer(stubTagger{}, nil)

	count := 0
	n.Normalize("alpha beta gamma delta")(func(Token) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("expected iteration to stop after 2 tokens, got %d", count)
	}
}
