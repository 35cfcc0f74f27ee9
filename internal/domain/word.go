package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// A word is identified by its canonical text: two words are the same entity
// iff their canonical forms are byte-equal. No case folding is applied.
// The word set is the durable collection of unique canonical words; adapters
// materialize it and keep insertion order so listings run newest first.

// Default policy limits. Both can be overridden through configuration.
const (
	// DefaultMaxWordLength is the maximum word length in code points.
	DefaultMaxWordLength = 50

	// DefaultMaxBatchSize is the maximum number of words per request.
	DefaultMaxBatchSize = 100
)

// The accepted alphabet is Mongolian Cyrillic (including ё and the extended
// letters ө and ү) plus Latin letters plus whitespace.
var (
	validWord  = regexp.MustCompile(`^[а-яА-ЯёЁөӨүҮa-zA-Z\s]+$`)
	disallowed = regexp.MustCompile(`[^а-яА-ЯёЁөӨүҮa-zA-Z\s]+`)
)

// Normalize strips every rune outside the accepted alphabet and trims
// leading/trailing whitespace, producing the canonical stored form.
// Internal whitespace is kept as-is. Side-effect free.
//
// Batch validation runs on the trimmed raw candidate, before stripping, so
// Normalize never manufactures a valid word out of a rejected one; for a
// candidate that passes validation, stripping is a no-op and Normalize
// reduces to trimming.
func Normalize(raw string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(raw, ""))
}

// IsValid reports whether word is a well-formed canonical word: non-empty,
// drawn solely from the accepted alphabet (internal whitespace allowed), and
// no longer than maxLen code points.
func IsValid(word string, maxLen int) bool {
	if word == "" {
		return false
	}

	if utf8.RuneCountInString(word) > maxLen {
		return false
	}

	return validWord.MatchString(word)
}

// CleanBatch trims every candidate and splits the batch into canonical valid
// words and the entries that fail validation. A candidate carrying any rune
// outside the accepted alphabet is reported invalid as-is, not stripped into
// an acceptable word. Whitespace-only candidates are dropped silently; they
// carried no content at all. Order is preserved. CleanBatch never fails; it
// only classifies.
func CleanBatch(candidates []string, maxLen int) (valid, invalid []string) {
	for _, raw := range candidates {
		word := strings.TrimSpace(raw)
		if word == "" {
			continue
		}

		if !IsValid(word, maxLen) {
			invalid = append(invalid, word)
			continue
		}

		valid = append(valid, word)
	}

	return valid, invalid
}

// Dedupe removes repeated words from a batch, keeping the first occurrence.
// Used so one request cannot carry the same word twice into an adapter.
func Dedupe(words []string) []string {
	if len(words) < 2 {
		return words
	}

	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}

		seen[w] = struct{}{}
		out = append(out, w)
	}

	return out
}
