// Package ocr defines the recognition boundary: an Engine turns a
// processed receipt image into raw text. The service treats the engine
// as opaque; anything it reports wrong surfaces as ErrOCRService.
package ocr

import (
	"context"
	"errors"
)

// ErrOCRService marks any failure inside the recognition engine, from a
// missing tesseract install to a crashed worker. Callers match it with
// errors.Is.
var ErrOCRService = errors.New("ocr service failed")

// ProgressFunc receives recognition progress as a percentage in [0,100].
// Values are monotonically non-decreasing within one Recognize call.
type ProgressFunc func(percent int)

// Engine recognizes text in an encoded image. imageDataURI is a base64
// PNG data URI as produced by the preprocess package; a bare base64
// payload is also accepted. progress may be nil.
type Engine interface {
	Recognize(ctx context.Context, imageDataURI string, progress ProgressFunc) (string, error)
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}
