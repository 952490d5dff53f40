package ocr

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Extraction is the best-effort result of scanning one receipt image. All
// fields are advisory; callers feed them through the normal transaction
// validation path.
type Extraction struct {
	Amount     decimal.Decimal
	RawAmount  string
	Date       *time.Time
	Merchant   string
	Text       string // aggregate OCR text, for category suggestion
	Confidence float64
}

var (
	keywordLineRE = regexp.MustCompile(`(?i)((?:sub-?total|grand total|total|amount due|balance due)[:\s]*[$€£]?\s*[0-9][0-9.,]*)`)
	currencyRE    = regexp.MustCompile(`[$€£]\s*[0-9][0-9.,]*`)
	centsNumberRE = regexp.MustCompile(`\b[0-9]{1,3}(?:[.,][0-9]{3})*[.,][0-9]{2}\b`)
	leadingWordRE = regexp.MustCompile(`^[A-Za-z][A-Za-z&'.-]*$`)
)

// ExtractReceipt performs preprocessing + multi-pass Tesseract OCR and pulls
// a total amount, a purchase date and a merchant guess out of the text.
// Returns ErrNoAmount when no plausible total is found.
func ExtractReceipt(path string) (*Extraction, error) {
	variants, err := runAllOCRPasses(path)
	if err != nil {
		return nil, fmt.Errorf("ocr passes: %w", err)
	}
	text := variants["text"]
	textOrig := variants["textOrig"]
	allText := variants["aggregate"]

	matches := FindAmountCandidates(allText)
	if len(matches) == 0 {
		log.Printf("OCR no amount candidates; text snippet=%q", snippet(allText, 140))
		return nil, ErrNoAmount
	}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		return nil, ErrNoAmount
	}

	// Confidence proxy based on substring length vs OCR text size, boosted
	// when the chosen match carries explicit total/currency context.
	conf := float64(len(raw)) / float64(len(text)+1)
	if conf > 1 {
		conf = 1
	}
	lowRaw := strings.ToLower(raw)
	if hasCurrencyHint(raw) || strings.Contains(lowRaw, "total") || centsRE.MatchString(strings.TrimSpace(raw)) {
		if conf < 0.85 {
			conf = 0.85
		}
	}

	ex := &Extraction{
		Amount:     amt,
		RawAmount:  raw,
		Date:       ParseDate(textOrig + " " + text),
		Merchant:   merchantGuess(textOrig),
		Text:       allText,
		Confidence: conf,
	}
	log.Printf("OCR extracted amount=%s raw=%q date=%v merchant=%q conf=%.2f", amt.String(), raw, ex.Date, ex.Merchant, conf)
	return ex, nil
}

// FindAmountCandidates returns raw substrings that look like receipt totals,
// in the order found, deduplicated and filtered for plausibility. Keyword
// lines keep their keyword prefix so scoring can rank them.
func FindAmountCandidates(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		if isPlausibleAmount(s) {
			out = append(out, s)
		}
	}
	for _, m := range keywordLineRE.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range currencyRE.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range centsNumberRE.FindAllString(text, -1) {
		add(m)
	}
	return out
}

// merchantGuess takes the leading alphabetic words of the full-text pass as
// a cheap merchant-name heuristic; receipts almost always start with the
// store name before any numeric content.
func merchantGuess(text string) string {
	words := strings.Fields(text)
	var name []string
	for _, w := range words {
		if !leadingWordRE.MatchString(w) {
			break
		}
		name = append(name, w)
		if len(name) == 4 {
			break
		}
	}
	return strings.Join(name, " ")
}
