package ocr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BestAmountFromMatches selects the most total-looking amount from raw
// candidate substrings. Keyword context outranks magnitude: "TOTAL 40.00"
// beats a bare larger number, and SUBTOTAL is penalized so the grand total
// wins over the pre-tax line.
func BestAmountFromMatches(matches []string) (decimal.Decimal, string, bool) {
	type cand struct {
		amt   decimal.Decimal
		raw   string
		score int
	}
	scoreFor := func(raw string) int {
		s := 0
		low := strings.ToLower(raw)
		if hasCurrencyHint(raw) {
			s += 10
		}
		if strings.Contains(low, "subtotal") || strings.Contains(low, "sub-total") {
			s -= 6
		} else if strings.Contains(low, "total") || strings.Contains(low, "amount due") || strings.Contains(low, "balance due") {
			s += 8
		}
		if centsRE.MatchString(strings.TrimSpace(raw)) {
			s += 5
		}
		if len(onlyDigits(raw)) >= 3 {
			s += 1
		}
		return s
	}
	var cands []cand
	for _, m := range matches {
		amt, err := ParseAmountFromMatch(m)
		if err != nil || !amt.IsPositive() {
			continue
		}
		cands = append(cands, cand{amt: amt, raw: m, score: scoreFor(m)})
	}
	if len(cands) == 0 {
		return decimal.Zero, "", false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		replace := false
		if c.score > best.score {
			replace = true
		} else if c.score == best.score {
			if c.amt.GreaterThan(best.amt) {
				replace = true
			} else if c.amt.Equal(best.amt) {
				if len(c.raw) > len(best.raw) {
					replace = true
				} else if len(c.raw) == len(best.raw) && c.raw < best.raw {
					replace = true
				}
			}
		}
		if replace {
			best = c
		}
	}
	return best.amt, best.raw, true
}
