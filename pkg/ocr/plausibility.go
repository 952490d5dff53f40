package ocr

import "strings"

// isPlausibleAmount applies lightweight heuristics to decide whether a
// matched numeric substring likely represents a monetary amount rather than
// a phone number, card fragment or order id. Conservative: prefer strings
// carrying currency symbols or a two-digit decimal part, reject long
// digit-only runs and leading zeros.
func isPlausibleAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if hasCurrencyHint(s) {
		return true
	}
	if centsRE.MatchString(s) {
		d := onlyDigits(s)
		return len(d) >= 3 && d[0] != '0'
	}
	d := onlyDigits(s)
	if d == "" || d[0] == '0' {
		return false
	}
	if len(d) > 7 {
		return false
	}
	// bare digit runs without cents are usually ids, not totals
	return strings.Contains(s, ".") || strings.Contains(s, ",")
}

// hasCurrencyHint reports whether the string carries a currency symbol or code.
func hasCurrencyHint(s string) bool {
	low := strings.ToLower(s)
	for _, h := range []string{"$", "€", "£", "usd", "eur", "gbp"} {
		if strings.Contains(low, h) {
			return true
		}
	}
	return false
}
