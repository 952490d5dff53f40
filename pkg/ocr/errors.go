package ocr

import "errors"

// ErrNoAmount is returned when no plausible receipt total can be extracted.
var ErrNoAmount = errors.New("no amount detected")
