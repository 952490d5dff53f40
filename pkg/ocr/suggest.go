package ocr

import "strings"

// NewCategoryNeeded is returned as the suggestion when none of the caller's
// categories matches the receipt text with usable confidence.
const NewCategoryNeeded = "NEW_CATEGORY_NEEDED"

// fallbackCategories maps a proposed category name to receipt keywords, used
// to suggest a name when the caller's own categories don't match.
var fallbackCategories = map[string][]string{
	"Groceries": {"supermarket", "grocery", "market", "mart", "produce"},
	"Dining":    {"restaurant", "cafe", "coffee", "pizza", "burger", "diner", "bistro"},
	"Fuel":      {"fuel", "gas", "petrol", "diesel", "shell", "station"},
	"Pharmacy":  {"pharmacy", "drugstore", "apothecary", "rx"},
	"Transport": {"taxi", "uber", "parking", "metro", "transit", "toll"},
}

// SuggestCategory scores the caller's category names against the OCR text
// and returns the best match with a confidence in [0, 1]. When nothing
// clears the bar it returns NewCategoryNeeded plus a proposed name from the
// fallback keyword table (empty if even that finds nothing).
func SuggestCategory(text string, categories []string) (suggestion string, confidence float64, suggestedName string) {
	low := strings.ToLower(text)

	bestScore := 0
	for _, name := range categories {
		score := 0
		for _, tok := range strings.Fields(strings.ToLower(name)) {
			if len(tok) < 3 {
				continue
			}
			score += strings.Count(low, tok) * 2
		}
		// a category literally named like a fallback bucket also matches its keywords
		for fb, keywords := range fallbackCategories {
			if !strings.EqualFold(fb, name) {
				continue
			}
			for _, kw := range keywords {
				score += strings.Count(low, kw)
			}
		}
		if score > bestScore {
			bestScore = score
			suggestion = name
		}
	}
	if bestScore > 0 {
		confidence = 0.4 + 0.15*float64(bestScore)
		if confidence > 0.95 {
			confidence = 0.95
		}
		return suggestion, confidence, ""
	}

	// no known category matched: propose one from the keyword table
	bestScore = 0
	for fb, keywords := range fallbackCategories {
		score := 0
		for _, kw := range keywords {
			score += strings.Count(low, kw)
		}
		if score > bestScore || (score == bestScore && score > 0 && fb < suggestedName) {
			bestScore = score
			suggestedName = fb
		}
	}
	if bestScore == 0 {
		suggestedName = ""
	}
	return NewCategoryNeeded, 0, suggestedName
}
