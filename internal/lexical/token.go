package lexical

// Category is the coarse part-of-speech bucket used to pick a lemmatization
// rule set.
type Category int

const (
	Adjective Category = iota
	Verb
	Noun
	Adverb
)

func (c Category) String() string {
	switch c {
	case Adjective:
		return "adjective"
	case Verb:
		return "verb"
	case Noun:
		return "noun"
	case Adverb:
		return "adverb"
	}
	return "unknown"
}

// CategoryForTag maps a Penn Treebank tag to its coarse category. Unrecognized
// tags fall back to Verb; with single-token context that bias recovers more
// lemmas than it loses.
func CategoryForTag(tag string) Category {
	if tag == "" {
		return Verb
	}
	switch tag[0] {
	case 'J':
		return Adjective
	case 'V':
		return Verb
	case 'N':
		return Noun
	case 'R':
		return Adverb
	}
	return Verb
}

// Token is one normalized word from a document. Surface is the lowercased
// form as it appeared; Lemma is its dictionary form.
type Token struct {
	Surface  string
	Lemma    string
	Category Category
}
