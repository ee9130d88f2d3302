// Package ai implements the retrieval-augmented chat assistant.
//
// Retrieval works on cached text summaries of projects and employees, scored
// by keyword overlap with the question. The Gemini API is only used to phrase
// the answer; without an API key the assistant degrades to returning the
// retrieved summaries directly.
package ai

import (
	"strings"
	"unicode"
)

// stopwords are ignored both in questions and in documents.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "how": {},
	"in": {}, "is": {}, "it": {}, "many": {}, "much": {}, "of": {},
	"on": {}, "or": {}, "our": {}, "that": {}, "the": {}, "their": {},
	"this": {}, "to": {}, "was": {}, "were": {}, "what": {}, "which": {},
	"who": {}, "with": {},
}

// Tokenize splits a text into lowercase tokens, dropping stopwords.
// The wildcard characters * and ? survive so that queries can glob,
// with the exception of trailing question marks, which are punctuation.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '*' && r != '?'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimRight(field, "?")
		if field == "" {
			continue
		}

		if _, ok := stopwords[field]; ok {
			continue
		}

		tokens = append(tokens, field)
	}

	return tokens
}
