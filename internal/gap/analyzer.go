package gap

import (
	"iter"
	"sort"

	"github.com/example/wordwise/internal/corpus"
	"github.com/example/wordwise/internal/lexical"
	"github.com/example/wordwise/pkg/models"
)

// Analyzer partitions a document's vocabulary into known and gap words
// relative to the reference corpus and, optionally, a user's mastered set.
// It performs no I/O and no generation.
type Analyzer struct {
	corpus *corpus.Corpus
}

// New builds an analyzer over the given corpus.
func New(c *corpus.Corpus) *Analyzer {
	return &Analyzer{corpus: c}
}

// Analyze consumes normalized tokens and produces the gap report. The
// validity filter applies to the surface form (the inflected word as it
// appeared); counting and the gap partition operate on lemmas. mastered may
// be nil; when supplied, mastered lemmas are excluded from the gap set.
func (a *Analyzer) Analyze(tokens iter.Seq[lexical.Token], mastered map[string]bool) models.GapReport {
	freq := make(map[string]int)
	for tok := range tokens {
		if !a.corpus.IsValid(tok.Surface) || !isAlpha(tok.Surface) {
			continue
		}
		freq[tok.Lemma]++
	}

	var gaps []string
	for lemma := range freq {
		if a.corpus.IsKnown(lemma) {
			continue
		}
		if mastered != nil && mastered[lemma] {
			continue
		}
		gaps = append(gaps, lemma)
	}
	sort.Strings(gaps)

	return models.GapReport{
		GapWords:      gaps,
		Frequency:     freq,
		TotalGapCount: len(gaps),
	}
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
