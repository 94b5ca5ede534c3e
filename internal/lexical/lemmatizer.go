package lexical

import "strings"

// Lemmatizer reduces an inflected word form to its lemma using WordNet-style
// suffix detachment: an irregular-form exception table first, then
// per-category suffix rules with orthographic repair (restoring a dropped
// final "e", undoubling a final consonant).
//
// Lookup, when set, validates candidate lemmas against a dictionary (the
// validity corpus in production) so that e.g. "tested" resolves to "test"
// rather than "teste". Without it the first repaired candidate stands.
type Lemmatizer struct {
	Lookup func(string) bool
}

var exceptions = map[Category]map[string]string{
	Verb: {
		"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be",
		"has": "have", "had": "have",
		"does": "do", "did": "do", "done": "do",
		"goes": "go", "went": "go", "gone": "go",
		"said": "say", "made": "make", "took": "take", "taken": "take",
		"got": "get", "gotten": "get", "saw": "see", "seen": "see",
		"came": "come", "knew": "know", "known": "know",
		"gave": "give", "given": "give", "found": "find",
		"thought": "think", "told": "tell", "became": "become",
		"left": "leave", "felt": "feel", "brought": "bring",
		"began": "begin", "begun": "begin", "kept": "keep", "held": "hold",
		"wrote": "write", "written": "write", "stood": "stand",
		"heard": "hear", "meant": "mean", "met": "meet", "ran": "run",
		"paid": "pay", "sat": "sit", "spoke": "speak", "spoken": "speak",
		"lost": "lose", "built": "build", "sent": "send", "spent": "spend",
		"fell": "fall", "fallen": "fall", "grew": "grow", "grown": "grow",
		"drew": "draw", "drawn": "draw", "broke": "break", "broken": "break",
		"chose": "choose", "chosen": "choose", "bought": "buy",
		"taught": "teach", "caught": "catch", "sought": "seek",
		"fought": "fight", "led": "lead", "read": "read", "put": "put",
		"set": "set", "let": "let",
	},
	Noun: {
		"men": "man", "women": "woman", "children": "child",
		"feet": "foot", "teeth": "tooth", "mice": "mouse", "geese": "goose",
		"lives": "life", "wives": "wife", "knives": "knife",
		"leaves": "leaf", "selves": "self", "halves": "half",
		"data": "datum", "criteria": "criterion", "phenomena": "phenomenon",
		"analyses": "analysis", "theses": "thesis", "crises": "crisis",
		"indices": "index", "matrices": "matrix",
	},
	Adjective: {
		"better": "good", "best": "good", "worse": "bad", "worst": "bad",
		"further": "far", "furthest": "far",
	},
	Adverb: {
		"better": "well", "best": "well",
	},
}

// Lemma returns the lemma of word for the given coarse category. The input is
// expected lowercased.
func (l *Lemmatizer) Lemma(word string, cat Category) string {
	if lemma, ok := exceptions[cat][word]; ok {
		return lemma
	}

	candidates := detach(word, cat)
	if len(candidates) == 0 {
		return word
	}
	if l.Lookup != nil {
		for _, c := range candidates {
			if l.Lookup(c) {
				return c
			}
		}
		// No candidate is a dictionary word; when the surface form is,
		// it was not inflected in the first place.
		if l.Lookup(word) {
			return word
		}
	}
	return candidates[0]
}

// detach applies the category's suffix rules and returns repaired candidate
// lemmas, most likely first. Empty when no rule matches.
func detach(word string, cat Category) []string {
	switch cat {
	case Verb:
		return detachVerb(word)
	case Noun:
		return detachNoun(word)
	case Adjective:
		return detachAdjective(word)
	}
	// Adverbs have no detachment rules.
	return nil
}

func detachVerb(w string) []string {
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return []string{w[:len(w)-3] + "y"}
	case strings.HasSuffix(w, "es") && len(w) > 3 && esDropsWholeSuffix(w):
		return []string{w[:len(w)-2], w[:len(w)-1]}
	case strings.HasSuffix(w, "s") && len(w) > 3 && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		return []string{w[:len(w)-1]}
	case strings.HasSuffix(w, "ed") && len(w) > 3:
		return repairStem(w[:len(w)-2])
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		return repairStem(w[:len(w)-3])
	}
	return nil
}

func detachNoun(w string) []string {
	switch {
	case strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") ||
		strings.HasSuffix(w, "xes") || strings.HasSuffix(w, "zes") ||
		strings.HasSuffix(w, "sses") || strings.HasSuffix(w, "oes"):
		return []string{w[:len(w)-2]}
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return []string{w[:len(w)-3] + "y"}
	case strings.HasSuffix(w, "ves") && len(w) > 4:
		return []string{w[:len(w)-3] + "f", w[:len(w)-3] + "fe"}
	case strings.HasSuffix(w, "s") && len(w) > 2 && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return []string{w[:len(w)-1]}
	}
	return nil
}

func detachAdjective(w string) []string {
	switch {
	case strings.HasSuffix(w, "est") && len(w) > 4:
		return repairStem(w[:len(w)-3])
	case strings.HasSuffix(w, "er") && len(w) > 3:
		return repairStem(w[:len(w)-2])
	}
	return nil
}

// esDropsWholeSuffix reports whether stripping "es" (rather than just "s") is
// the plausible reduction: sibilant stems and o-stems take the full "es".
func esDropsWholeSuffix(w string) bool {
	stem := w[:len(w)-2]
	return strings.HasSuffix(stem, "ss") || strings.HasSuffix(stem, "x") ||
		strings.HasSuffix(stem, "z") || strings.HasSuffix(stem, "ch") ||
		strings.HasSuffix(stem, "sh") || strings.HasSuffix(stem, "o")
}

// repairStem orders candidate spellings for a stem whose "ed"/"ing"/"er"/"est"
// suffix was removed: restore the silent "e" for -at/-bl/-iz stems
// ("creat" -> "create"), undouble a doubled final consonant ("stopp" ->
// "stop"), otherwise prefer the bare stem with "+e" as a fallback.
func repairStem(stem string) []string {
	if len(stem) < 2 {
		return []string{stem}
	}
	if strings.HasSuffix(stem, "at") || strings.HasSuffix(stem, "bl") || strings.HasSuffix(stem, "iz") {
		return []string{stem + "e", stem}
	}
	last := stem[len(stem)-1]
	if last == stem[len(stem)-2] && !isVowel(last) && last != 'l' && last != 's' && last != 'z' {
		return []string{stem[:len(stem)-1], stem}
	}
	return []string{stem, stem + "e"}
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
