package ocr

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// trailing two-digit decimal part, either separator
	centsRE = regexp.MustCompile(`[.,]\d{2}$`)
	// numeric date forms: 2024-01-15, 15/01/2024, 01/15/2024, 15.01.2024
	isoDateRE     = regexp.MustCompile(`\b(20\d{2})-(\d{1,2})-(\d{1,2})\b`)
	slashedDateRE = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})[/.](20\d{2})\b`)
	// textual month forms: Jan 15, 2024 / 15 Jan 2024
	monthNameRE = regexp.MustCompile(`(?i)\b(?:(\d{1,2})\s+)?(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})?,?\s*(20\d{2})\b`)
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseAmountFromMatch normalizes a matched substring into a decimal amount.
// It copes with both separator conventions: "1,234.56" and "1.234,56" parse
// to the same value, and a single separator followed by exactly two digits is
// treated as the decimal point while three digits mean grouping.
func ParseAmountFromMatch(found string) (decimal.Decimal, error) {
	s := strings.TrimSpace(found)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty")
	}
	// strip everything but digits and separators
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	s = strings.Trim(s, ".,")
	if onlyDigits(s) == "" {
		return decimal.Zero, fmt.Errorf("no digits extracted from %q", found)
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// both present: the later one is the decimal separator
		if lastComma > lastDot {
			s = strings.ReplaceAll(s[:lastComma], ".", "") + "." + s[lastComma+1:]
		} else {
			s = strings.ReplaceAll(s[:lastDot], ",", "") + "." + s[lastDot+1:]
		}
	case lastComma >= 0:
		intPart, frac := s[:lastComma], s[lastComma+1:]
		if len(frac) == 2 {
			s = strings.ReplaceAll(intPart, ",", "") + "." + frac
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		frac := s[lastDot+1:]
		if len(frac) == 2 {
			s = strings.ReplaceAll(s[:lastDot], ".", "") + "." + frac
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amt.Abs(), nil
}

// ParseDate extracts the first recognizable calendar date from OCR text.
// Slashed forms are ambiguous between DD/MM and MM/DD; whichever reading
// yields a valid date wins, preferring DD/MM. Returns nil when no date found.
func ParseDate(text string) *time.Time {
	if m := isoDateRE.FindStringSubmatch(text); len(m) == 4 {
		if t, ok := makeDate(m[1], m[2], m[3]); ok {
			return &t
		}
	}
	if m := slashedDateRE.FindStringSubmatch(text); len(m) == 4 {
		// try DD/MM/YYYY first, then MM/DD/YYYY
		if t, ok := makeDate(m[3], m[2], m[1]); ok {
			return &t
		}
		if t, ok := makeDate(m[3], m[1], m[2]); ok {
			return &t
		}
	}
	if m := monthNameRE.FindStringSubmatch(text); len(m) == 5 {
		day := m[1]
		if day == "" {
			day = m[3]
		}
		if day != "" {
			if mon, ok := monthAbbrev[strings.ToLower(m[2])]; ok {
				if t, ok2 := makeDate(m[4], fmt.Sprint(int(mon)), day); ok2 {
					return &t
				}
			}
		}
	}
	return nil
}

func makeDate(year, month, day string) (time.Time, bool) {
	y, m, d := atoi(year), atoi(month), atoi(day)
	if y < 2000 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// reject day overflow (e.g. Feb 31 normalizing into March)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
