package ocr

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmountBothConventions(t *testing.T) {
	cases := map[string]string{
		"1,234.56":    "1234.56",
		"1.234,56":    "1234.56",
		"$12.99":      "12.99",
		"TOTAL 40.00": "40",
		"10.000":      "10000", // three digits after a single separator is grouping
		"7,500.00":    "7500",
	}
	for in, want := range cases {
		amt, err := ParseAmountFromMatch(in)
		if err != nil {
			t.Fatalf("ParseAmountFromMatch(%q) error: %v", in, err)
		}
		if !amt.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("ParseAmountFromMatch(%q) = %s, want %s", in, amt.String(), want)
		}
	}
}

func TestParseAmountEmpty(t *testing.T) {
	if _, err := ParseAmountFromMatch("  "); err == nil {
		t.Fatal("expected error for blank input")
	}
	if _, err := ParseAmountFromMatch("Rp"); err == nil {
		t.Fatal("expected error for input without digits")
	}
}

func TestParseDateForms(t *testing.T) {
	cases := map[string]time.Time{
		"receipt 2024-01-15 store":  time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		"date 15/01/2024 total":     time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		"paid Jan 15, 2024 cash":    time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		"visited 15 Mar 2023 night": time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got := ParseDate(in)
		if got == nil {
			t.Fatalf("ParseDate(%q) found nothing", in)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if got := ParseDate("no date here at all"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestParseDateRejectsOverflow(t *testing.T) {
	// 31/02/2024 is not a real date in either DD/MM or MM/DD reading
	if got := ParseDate("xx 31/02/2024 yy"); got != nil {
		t.Fatalf("expected nil for impossible date, got %v", got)
	}
}
