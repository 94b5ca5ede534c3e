package lexical

import (
	"iter"
	"regexp"
	"strings"
)

// wordPattern matches runs of letters standing on their own; letter runs glued
// to digits ("xyzzy123") are not words and produce no match.
var wordPattern = regexp.MustCompile(`\b[a-zA-Z]+\b`)

// Tagger assigns a coarse part-of-speech category to a single word with no
// surrounding context.
type Tagger interface {
	Categorize(word string) Category
}

// Normalizer turns raw document text into a sequence of normalized word
// tokens: alphabetic tokenization, single-character filtering, POS tagging,
// POS-aware lemmatization.
type Normalizer struct {
	tagger     Tagger
	lemmatizer *Lemmatizer
}

// NewNormalizer builds a normalizer. lookup may be nil; when set it is used to
// validate candidate lemmas against a dictionary.
func NewNormalizer(tagger Tagger, lookup func(string) bool) *Normalizer {
	return &Normalizer{
		tagger:     tagger,
		lemmatizer: &Lemmatizer{Lookup: lookup},
	}
}

// Normalize yields one Token per accepted word in text, in document order.
// The sequence is lazy and can be ranged over more than once; given the same
// text and tagger it always yields the same tokens.
func (n *Normalizer) Normalize(text string) iter.Seq[Token] {
	lowered := strings.ToLower(text)
	return func(yield func(Token) bool) {
		for _, word := range wordPattern.FindAllString(lowered, -1) {
			if len(word) < 2 {
				continue
			}
			cat := n.tagger.Categorize(word)
			tok := Token{
				Surface:  word,
				Lemma:    n.lemmatizer.Lemma(word, cat),
				Category: cat,
			}
			if !yield(tok) {
				return
			}
		}
	}
}
