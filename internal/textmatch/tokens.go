// Package textmatch provides the token normalization and fuzzy string
// matching used by catalog search and the inventory listing filter.
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize extracts maximal runs of word characters (letters, digits,
// underscore) from text, lowercased and deduplicated into a set. Empty or
// blank input yields an empty set. No plural normalization is applied; the
// ranking path scores raw tokens and relies on fuzzy matching for
// inflection tolerance.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens[b.String()] = struct{}{}
			b.Reset()
		}
	}

	for _, r := range text {
		if isWordRune(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// TokenizeStemmed extracts word tokens like Tokenize and additionally
// normalizes each through NormalizeWord. Used by the listing filter, which
// wants "chairs" and "chair" to collide; the ranker deliberately does not
// use this variant.
func TokenizeStemmed(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for tok := range Tokenize(text) {
		tokens[NormalizeWord(tok)] = struct{}{}
	}
	return tokens
}

// NormalizeWord lowercases a word and strips a naive plural suffix: words
// longer than three characters lose a trailing "es", otherwise a trailing
// "s". This is a heuristic, not a stemmer: it produces false stems like
// "tables" -> "tabl" and "glass" -> "glas", and the fuzzy ratio absorbs
// the difference. Short words ("bus") pass through unchanged.
func NormalizeWord(word string) string {
	w := strings.ToLower(word)
	if utf8.RuneCountInString(w) > 3 {
		if strings.HasSuffix(w, "es") {
			return w[:len(w)-2]
		}
		if strings.HasSuffix(w, "s") {
			return w[:len(w)-1]
		}
	}
	return w
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
