package extract

import "regexp"

// Product/price pattern: an arbitrary prefix, the literal token "price",
// a digit run, and a currency marker. Case-insensitive; the lazy prefix
// makes the first occurrence in document order win. "price" and the
// currency are whole tokens, so "Toprice" and "birrama" never match.
var pricePattern = regexp.MustCompile(`(?is)(.*?)\bprice\s*(\d+)\s*(birr|etb)\b`)

// PriceMatch is the first structurally valid product/price occurrence in a
// message. Prefix is the raw candidate product name, untrimmed. Digits is
// the raw price token; parsing it into an integer is the caller's decision
// so that overflow can be classified separately from a missing pattern.
type PriceMatch struct {
	Prefix   string
	Digits   string
	Currency string
}

// FindFirstPriceMatch returns the first non-overlapping match of the
// product/price pattern, or ok=false when the message has none.
func FindFirstPriceMatch(text string) (PriceMatch, bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return PriceMatch{}, false
	}

	return PriceMatch{Prefix: m[1], Digits: m[2], Currency: m[3]}, true
}
