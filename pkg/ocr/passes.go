package ocr

import (
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const (
	amountWhitelist = "0123456789$€£USDEURGBPusdeurgbp.,:()/- "
	fullWhitelist   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz$€£.,:()/-# "
)

// runAllOCRPasses executes the multi-pass OCR strategy: an amount-focused
// pass over the cleaned image, a digits-only pass, and a full-alphabet pass
// over the original (for line keywords, dates and the merchant name).
// Returns the variant texts keyed by pass name plus an "aggregate" blob.
func runAllOCRPasses(path string) (map[string]string, error) {
	out := map[string]string{}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	cleaned := prepareImage(img)

	tmpFile, err := os.CreateTemp("", "ocr-base-*.png")
	tmp := path
	if err == nil {
		tmp = tmpFile.Name()
		_ = tmpFile.Close()
		_ = imaging.Save(cleaned, tmp)
		defer os.Remove(tmp)
	}

	out["text"] = runPass(tmp, amountWhitelist, gosseract.PSM_AUTO)
	out["textDigits"] = runPass(tmp, "0123456789., ", gosseract.PSM_AUTO)
	out["textOrig"] = runPass(path, fullWhitelist, gosseract.PSM_AUTO)
	// sparse pass helps when the total sits alone in a column
	sparse := runPass(path, fullWhitelist, gosseract.PSM_SPARSE_TEXT)

	aggregate := out["text"] + " " + out["textDigits"] + " " + out["textOrig"] + " " + sparse
	out["aggregate"] = normalizeOCRText(aggregate)
	log.Printf("OCR passes done for %s aggregateLen=%d", path, len(out["aggregate"]))
	return out, nil
}

func runPass(path, whitelist string, psm gosseract.PageSegMode) string {
	cl := gosseract.NewClient()
	defer cl.Close()
	_ = cl.SetLanguage("eng")
	_ = cl.SetWhitelist(whitelist)
	_ = cl.SetPageSegMode(psm)
	cl.SetImage(path)
	text, err := cl.Text()
	if err != nil {
		return ""
	}
	return normalizeOCRText(text)
}
