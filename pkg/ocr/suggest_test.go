package ocr

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec is a test shorthand.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSuggestCategoryDirectMatch(t *testing.T) {
	text := "FRESH MARKET grocery receipt total 12.99 groceries dept"
	got, conf, extra := SuggestCategory(text, []string{"Groceries", "Dining"})
	if got != "Groceries" {
		t.Fatalf("expected Groceries, got %q", got)
	}
	if conf <= 0.5 {
		t.Fatalf("expected confidence above 0.5, got %f", conf)
	}
	if extra != "" {
		t.Fatalf("no new-category name expected, got %q", extra)
	}
}

func TestSuggestCategoryFallback(t *testing.T) {
	text := "SHELL STATION fuel diesel pump 3 total 52.10"
	got, conf, extra := SuggestCategory(text, []string{"Rent", "Salary"})
	if got != NewCategoryNeeded {
		t.Fatalf("expected %s, got %q", NewCategoryNeeded, got)
	}
	if conf != 0 {
		t.Fatalf("expected zero confidence, got %f", conf)
	}
	if extra != "Fuel" {
		t.Fatalf("expected Fuel proposal, got %q", extra)
	}
}

func TestSuggestCategoryNothing(t *testing.T) {
	got, _, extra := SuggestCategory("completely unrelated text", nil)
	if got != NewCategoryNeeded || extra != "" {
		t.Fatalf("expected bare NEW_CATEGORY_NEEDED, got %q / %q", got, extra)
	}
}

func TestFindAmountCandidatesFilters(t *testing.T) {
	text := "CARD ****1234567890 TOTAL $48.60 ref 0012345 tax 3.60"
	out := FindAmountCandidates(text)
	if len(out) == 0 {
		t.Fatal("expected candidates")
	}
	for _, c := range out {
		if c == "****1234567890" || c == "0012345" {
			t.Fatalf("implausible candidate leaked through: %q", c)
		}
	}
}
