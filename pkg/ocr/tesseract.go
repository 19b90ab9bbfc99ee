package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// receiptWhitelist restricts recognition to characters that actually
// occur on bills. Cuts down on punctuation noise in degraded scans.
const receiptWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789₹.,-()x/ "

// Tesseract is the gosseract-backed Engine. The zero value is not
// usable; construct with NewTesseract.
type Tesseract struct {
	Language  string
	Whitelist string
}

// NewTesseract returns an engine configured for English receipts.
func NewTesseract() *Tesseract {
	return &Tesseract{Language: "eng", Whitelist: receiptWhitelist}
}

// Recognize decodes the data URI to a temp file and runs tesseract on
// it. gosseract has no cancellation hook, so the call runs in its own
// goroutine; on context cancellation Recognize returns promptly and the
// abandoned call finishes in the background.
func (t *Tesseract) Recognize(ctx context.Context, imageDataURI string, progress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRService, err)
	}
	report(progress, 0)

	data, err := decodeDataURI(imageDataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRService, err)
	}

	f, err := os.CreateTemp("", "billscan-*.png")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRService, err)
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", ErrOCRService, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOCRService, err)
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		client := gosseract.NewClient()
		defer client.Close()
		if err := client.SetLanguage(t.Language); err != nil {
			done <- outcome{err: err}
			return
		}
		if t.Whitelist != "" {
			if err := client.SetWhitelist(t.Whitelist); err != nil {
				done <- outcome{err: err}
				return
			}
		}
		if err := client.SetImage(tmpPath); err != nil {
			done <- outcome{err: err}
			return
		}
		text, err := client.Text()
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrOCRService, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return "", fmt.Errorf("%w: %v", ErrOCRService, out.err)
		}
		report(progress, 100)
		log.Debug().Int("chars", len(out.text)).Str("lang", t.Language).Msg("tesseract pass complete")
		return out.text, nil
	}
}

// decodeDataURI accepts either a data: URI or a bare base64 payload.
func decodeDataURI(uri string) ([]byte, error) {
	payload := uri
	if strings.HasPrefix(uri, "data:") {
		i := strings.Index(uri, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data uri")
		}
		payload = uri[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %v", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return data, nil
}
