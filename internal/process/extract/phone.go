package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Local phone convention: a leading 09 followed by eight more digits, with
// arbitrary whitespace tolerated between digits.
var phonePattern = regexp.MustCompile(`0\s*9(?:\s*\d){8}`)

// Phones finds every phone number in text and removes the matched
// substrings, so the digits cannot leak into product/price parsing.
// Returned numbers are canonical 10-digit strings in order of first
// appearance; the list is nil when nothing matched.
//
// Matches are replaced with a single space and removal repeats until the
// text is stable: removing a match can butt a stray digit up against
// trailing digits and form a new match. The cleaned text therefore never
// contains a match, so a second pass is a no-op.
func Phones(text string) (string, []string) {
	matches := phonePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	phones := make([]string, len(matches))
	for i, m := range matches {
		phones[i] = stripWhitespace(m)
	}

	cleaned := phonePattern.ReplaceAllString(text, " ")
	for phonePattern.MatchString(cleaned) {
		cleaned = phonePattern.ReplaceAllString(cleaned, " ")
	}

	return cleaned, phones
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
