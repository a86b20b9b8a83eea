package interpret

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// phonePattern accepts international prefixes, separators and a
	// minimum of 8 digits so short numbers like option selections don't
	// false-positive.
	phonePattern = regexp.MustCompile(`\+?[\d][\d\s\-().]{7,}\d`)

	nonDigit = regexp.MustCompile(`[^\d]`)

	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bme llamo\s+([a-záéíóúñü]+(?:\s+[a-záéíóúñü]+)?)`),
		regexp.MustCompile(`(?i)\bmi nombre es\s+([a-záéíóúñü]+(?:\s+[a-záéíóúñü]+)?)`),
		regexp.MustCompile(`(?i)\bsoy\s+([a-záéíóúñü]+(?:\s+[a-záéíóúñü]+)?)`),
	}
)

// nameBlocklist filters false positives from "soy ..." phrasings that
// describe the business rather than introduce a person.
var nameBlocklist = map[string]struct{}{
	"el": {}, "la": {}, "un": {}, "una": {}, "de": {},
	"dueno": {}, "dueña": {}, "dueno de": {}, "gerente": {},
	"emprendedor": {}, "emprendedora": {}, "freelancer": {},
	"independiente": {}, "nuevo": {}, "nueva": {},
}

// ExtractEmail returns the first email address in the raw message, or "".
// Extraction runs on the raw text: normalization strips the punctuation
// email addresses depend on.
func ExtractEmail(message string) string {
	return strings.ToLower(emailPattern.FindString(message))
}

// ExtractPhone returns the first phone number in the raw message with
// separators stripped, or "". Numbers shorter than 8 digits are ignored.
func ExtractPhone(message string) string {
	match := phonePattern.FindString(message)
	if match == "" {
		return ""
	}
	cleaned := cleanPhone(match)
	if digits := strings.TrimPrefix(cleaned, "+"); len(digits) < 8 {
		return ""
	}
	return cleaned
}

func cleanPhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if strings.HasPrefix(raw, "+") {
		return "+" + digits
	}
	return digits
}

// nameConnectors are words that end the name when the sentence continues
// ("me llamo Ana y tengo...").
var nameConnectors = map[string]struct{}{
	"y": {}, "e": {}, "o": {}, "u": {}, "de": {}, "del": {},
	"la": {}, "el": {}, "que": {}, "pero": {}, "tengo": {}, "soy": {},
}

// ExtractName returns a capitalized personal name from introduction
// phrasings ("me llamo Ana", "mi nombre es Juan Pérez", "soy Carlos"),
// or "". Business self-descriptions after "soy" are filtered out.
func ExtractName(message string) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		words := strings.Fields(strings.TrimSpace(m[1]))
		if len(words) == 0 {
			continue
		}
		first := strings.ToLower(accentReplacer.Replace(words[0]))
		if _, blocked := nameBlocklist[first]; blocked {
			continue
		}
		if len(words) == 2 {
			second := strings.ToLower(accentReplacer.Replace(words[1]))
			if _, connector := nameConnectors[second]; connector {
				words = words[:1]
			}
		}
		return capitalizeWords(strings.Join(words, " "))
	}
	return ""
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
