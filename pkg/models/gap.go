package models

import "time"

// GapReport is the outcome of analyzing a document against the reference
// corpus and a user's mastered set.
type GapReport struct {
	// GapWords holds the lemmas outside the known vocabulary, sorted.
	GapWords []string `json:"gap_words"`
	// Frequency maps every surviving lemma to its occurrence count in the
	// document, known words included.
	Frequency map[string]int `json:"frequency"`
	// TotalGapCount is len(GapWords).
	TotalGapCount int `json:"total_gap_count"`
}

// NewWord is a cached gap word with its generated explanation, kept for
// later recall review.
type NewWord struct {
	Word        string    `json:"word" db:"word"`
	Explanation string    `json:"explanation" db:"explanations"`
	InsertTime  time.Time `json:"insert_time" db:"insert_time"`
}

// UsageStat counts how many times an AI-backed feature was used.
type UsageStat struct {
	Feature string `json:"feature" db:"feature"`
	Count   int    `json:"count" db:"count"`
}
