package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWordChar reports whether r counts as a word character for boundary and
// tokenization purposes: letters, digits, and underscore.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// hasBoundaryBefore reports whether a word boundary exists immediately before
// byte offset i in s, given the first rune of the candidate match. A boundary
// exists when exactly one side is a word character; out of bounds counts as
// non-word. Needles that start or end with a non-word rune therefore demand a
// word character on the adjacent side, so "c++" inside "c++ dev" has no
// closing boundary.
func hasBoundaryBefore(s string, i int, first rune) bool {
	if i == 0 {
		return isWordChar(first)
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordChar(prev) != isWordChar(first)
}

// hasBoundaryAfter reports whether a word boundary exists immediately after
// byte offset end in s, given the last rune of the candidate match.
func hasBoundaryAfter(s string, end int, last rune) bool {
	if end >= len(s) {
		return isWordChar(last)
	}
	next, _ := utf8.DecodeRuneInString(s[end:])
	return isWordChar(last) != isWordChar(next)
}

// containsWholeWord reports whether needle occurs in haystack delimited by
// word boundaries on both sides. Both strings are assumed lowercased.
func containsWholeWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(needle)
	last, _ := utf8.DecodeLastRuneInString(needle)
	for off := 0; ; {
		i := strings.Index(haystack[off:], needle)
		if i < 0 {
			return false
		}
		i += off
		end := i + len(needle)
		if hasBoundaryBefore(haystack, i, first) && hasBoundaryAfter(haystack, end, last) {
			return true
		}
		off = i + 1
		if off >= len(haystack) {
			return false
		}
	}
}

// wordTokens splits s into maximal runs of word characters at least minLen
// runes long.
func wordTokens(s string, minLen int) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			if tok := b.String(); utf8.RuneCountInString(tok) >= minLen {
				tokens = append(tokens, tok)
			}
			b.Reset()
		}
	}
	for _, r := range s {
		if isWordChar(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// normalizeText lowercases s and replaces every character that is neither a
// word character nor whitespace with a space.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if isWordChar(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}
