// Package interpret provides rule-based interpretation of Spanish customer
// messages: text normalization, an ordered intent classifier and contact
// data extraction.
package interpret

import (
	"regexp"
	"strings"
)

var accentReplacer = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
	"ñ", "n",
)

var (
	punctuationRun = regexp.MustCompile(`[¿¡!?.,;:]+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, folds accented characters to their plain
// equivalents, replaces runs of punctuation with a single space and
// collapses whitespace. The result is trimmed. Normalize is idempotent and
// returns "" for empty input.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(strings.TrimSpace(text))
	text = accentReplacer.Replace(text)
	text = punctuationRun.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
