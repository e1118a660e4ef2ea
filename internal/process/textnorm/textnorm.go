// Package textnorm prepares raw message text for extraction.
//
// Normalize is the in-pipeline step: it only trims. Interior whitespace is
// kept as-is because the extraction patterns must see human formatting
// noise, including spaces inside phone numbers.
//
// Sanitize is the ingest-time step applied once when a scraped dump is
// loaded: it strips emoji and stray symbols that the scraper lets through,
// keeping letters, digits, whitespace and basic punctuation.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalize trims leading and trailing whitespace. Interior runs of
// whitespace are preserved.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// keptPunct is the punctuation that survives sanitization. Everything the
// extraction patterns and product names need is in here.
const keptPunct = ".,!?;:()[]@&+-/%"

var sanitizer transform.Transformer = runes.Remove(runes.Predicate(isStripped))

func isStripped(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return false
	}

	return !strings.ContainsRune(keptPunct, r)
}

// Sanitize removes emoji and characters outside the kept set. Whitespace is
// never collapsed here; that would destroy spacing the phone pattern
// tolerates.
func Sanitize(text string) string {
	out, _, err := transform.String(sanitizer, text)
	if err != nil {
		return text
	}

	return out
}
