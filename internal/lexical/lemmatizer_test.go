package lexical

import "testing"

func TestLemmaSuffixRules(t *testing.T) {
	dict := map[string]bool{
		"create": true, "test": true, "tree": true, "basic": true,
		"study": true, "watch": true, "stop": true, "make": true,
		"word": true, "big": true, "use": true,
	}
	l := &Lemmatizer{Lookup: func(w string) bool { return dict[w] }}

	cases := []struct {
		word string
		cat  Category
		want string
	}{
		{"created", Verb, "create"},
		{"creates", Verb, "create"},
		{"creating", Verb, "create"},
		{"tested", Verb, "test"},
		{"studies", Verb, "study"},
		{"watches", Verb, "watch"},
		{"stopped", Verb, "stop"},
		{"making", Verb, "make"},
		{"uses", Verb, "use"},
		{"trees", Noun, "tree"},
		{"basics", Noun, "basic"},
		{"words", Noun, "word"},
		{"bigger", Adjective, "big"},
		{"biggest", Adjective, "big"},
		// No rule applies: the surface form stands.
		{"bitterly", Adverb, "bitterly"},
		{"worker", Noun, "worker"},
		{"farmer", Noun, "farmer"},
		{"the", Verb, "the"},
	}
	for _, tc := range cases {
		if got := l.Lemma(tc.word, tc.cat); got != tc.want {
			t.Errorf("Lemma(%q, %s) = %q, want %q", tc.word, tc.cat, got, tc.want)
		}
	}
}

func TestLemmaExceptions(t *testing.T) {
	l := &Lemmatizer{}

	cases := []struct {
		word string
		cat  Category
		want string
	}{
		{"was", Verb, "be"},
		{"has", Verb, "have"},
		{"went", Verb, "go"},
		{"children", Noun, "child"},
		{"men", Noun, "man"},
		{"better", Adjective, "good"},
		{"better", Adverb, "well"},
	}
	for _, tc := range cases {
		if got := l.Lemma(tc.word, tc.cat); got != tc.want {
			t.Errorf("Lemma(%q, %s) = %q, want %q", tc.word, tc.cat, got, tc.want)
		}
	}
}

func TestLemmaWithoutLookup(t *testing.T) {
	l := &Lemmatizer{}

	// The -at stem repair restores the silent e without a dictionary.
	if got := l.Lemma("created", Verb); got != "create" {
		t.Errorf("Lemma(created) = %q, want create", got)
	}
	if got := l.Lemma("tested", Verb); got != "test" {
		t.Errorf("Lemma(tested) = %q, want test", got)
	}
}

func TestCategoryForTag(t *testing.T) {
	cases := []struct {
		tag  string
		want Category
	}{
		{"JJ", Adjective},
		{"JJR", Adjective},
		{"VBD", Verb},
		{"VBZ", Verb},
		{"NN", Noun},
		{"NNS", Noun},
		{"RB", Adverb},
		{"DT", Verb}, // unrecognized tags default to verb
		{"", Verb},
	}
	for _, tc := range cases {
		if got := CategoryForTag(tc.tag); got != tc.want {
			t.Errorf("CategoryForTag(%q) = %s, want %s", tc.tag, got, tc.want)
		}
	}
}
