package ocr

import "testing"

func TestBestAmountTotalPriority(t *testing.T) {
	// $50.00 is larger, but "TOTAL $40.00" should win due to the keyword boost.
	matches := []string{"$50.00", "TOTAL $40.00"}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		t.Fatalf("no amount chosen")
	}
	if !amt.Equal(dec("40")) {
		t.Fatalf("expected 40 (TOTAL) got %s raw=%s", amt, raw)
	}
}

func TestBestAmountSubtotalPenalized(t *testing.T) {
	matches := []string{"SUBTOTAL $45.00", "TOTAL $48.60"}
	amt, _, ok := BestAmountFromMatches(matches)
	if !ok {
		t.Fatalf("no amount chosen")
	}
	if !amt.Equal(dec("48.60")) {
		t.Fatalf("expected grand total 48.60 got %s", amt)
	}
}

func TestBestAmountNoCandidates(t *testing.T) {
	if _, _, ok := BestAmountFromMatches([]string{"", "abc"}); ok {
		t.Fatal("expected no amount from junk input")
	}
}
