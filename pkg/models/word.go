package models

// Word is a Word node. Its identity is the normalized text: word nodes are
// shared across all word lists, never copied per list.
type Word struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
	Phonetic    string `json:"phonetic,omitempty"`
	Difficulty  int    `json:"difficulty,omitempty"` // 1-5 scale
}

// WordList is a named collection of words owned by exactly one user.
type WordList struct {
	WID         string `json:"wid"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
