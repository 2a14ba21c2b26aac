package utils

import (
	"strings"
	"unicode"
)

// MinTokenLength is the shortest word kept by Tokenize.
const MinTokenLength = 3

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "any": true, "can": true, "had": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true, "his": true,
	"how": true, "its": true, "may": true, "new": true, "now": true, "old": true,
	"see": true, "who": true, "did": true, "get": true, "let": true, "say": true,
	"she": true, "too": true, "use": true, "with": true, "this": true, "that": true,
	"from": true, "they": true, "will": true, "what": true, "when": true, "your": true,
	"have": true, "been": true, "were": true, "into": true, "than": true, "then": true,
	"them": true, "some": true, "just": true, "over": true, "also": true, "after": true,
	"about": true, "their": true, "there": true, "these": true, "those": true, "which": true,
	"while": true, "would": true, "could": true, "should": true, "where": true, "here": true,
	"more": true, "most": true, "very": true, "amid": true, "today": true, "image": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// IsStopWord reports whether w is ignored by Tokenize.
func IsStopWord(w string) bool {
	return stopWords[w]
}

// Words lowercases s and splits it on every non-alphanumeric rune.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Tokenize returns the significant words of s: lowercase, alphanumeric only,
// without stop-words and without words shorter than MinTokenLength.
func Tokenize(s string) []string {
	var tokens []string
	for _, w := range Words(s) {
		if len([]rune(w)) < MinTokenLength || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// UniqueTokens is Tokenize with duplicates removed, first occurrence wins.
func UniqueTokens(parts ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range parts {
		for _, t := range Tokenize(p) {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
