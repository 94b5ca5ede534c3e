package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Corpus holds the two reference vocabularies: the "known" baseline a learner
// is assumed to have, and the broader "validity" vocabulary that separates
// real words from proper nouns and noise. Built once at startup and never
// mutated afterwards, so concurrent readers need no locking.
type Corpus struct {
	known    map[string]struct{}
	validity map[string]struct{}
}

// Load reads both vocabulary files. Each line contributes its first
// whitespace-separated field, lowercased; blank lines are skipped.
func Load(knownPath, validityPath string) (*Corpus, error) {
	known, err := readWordFile(knownPath)
	if err != nil {
		return nil, fmt.Errorf("load known corpus: %w", err)
	}
	validity, err := readWordFile(validityPath)
	if err != nil {
		return nil, fmt.Errorf("load validity corpus: %w", err)
	}
	return &Corpus{known: known, validity: validity}, nil
}

// New builds a corpus from in-memory word sets.
func New(known, validity []string) *Corpus {
	c := &Corpus{
		known:    make(map[string]struct{}, len(known)),
		validity: make(map[string]struct{}, len(validity)),
	}
	for _, w := range known {
		c.known[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range validity {
		c.validity[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// IsKnown reports membership in the known baseline vocabulary.
func (c *Corpus) IsKnown(word string) bool {
	_, ok := c.known[word]
	return ok
}

// IsValid reports membership in the validity vocabulary.
func (c *Corpus) IsValid(word string) bool {
	_, ok := c.validity[word]
	return ok
}

// KnownSize returns the number of known-corpus entries.
func (c *Corpus) KnownSize() int { return len(c.known) }

// ValiditySize returns the number of validity-corpus entries.
func (c *Corpus) ValiditySize() int { return len(c.validity) }

func readWordFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		words[strings.ToLower(fields[0])] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
