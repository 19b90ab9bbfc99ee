// Package preprocess prepares a raw receipt photo for OCR: resize to a
// bounded canvas, optional AI background removal, contrast enhancement,
// sharpening and adaptive thresholding. All transforms are deterministic
// pixel operations; the only network touchpoint is the optional
// segmentation call, whose failure is tolerated rather than fatal.
package preprocess

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

// MaxDimension caps the longer side of the working image. Larger photos
// are scaled down preserving aspect ratio before any other stage runs.
const MaxDimension = 1024

// maxInputPixels guards the initial pixel-buffer allocation; a photo this
// large is a corrupt header or a hostile input, not a receipt.
const maxInputPixels = 64 << 20

// contrastFactor is the linear contrast gain applied around mid-gray.
const contrastFactor = 1.8

// Options toggles the individual pipeline stages. The zero value disables
// everything; use DefaultOptions for the usual contrast+sharpen pass.
type Options struct {
	EnhanceContrast  bool
	Sharpen          bool
	Threshold        bool
	RemoveBackground bool
}

// DefaultOptions enables contrast enhancement and sharpening. Adaptive
// thresholding is off (it is an alternative to sharpening for heavily
// degraded scans) and background removal is off, being the slowest and
// least reliable stage.
func DefaultOptions() Options {
	return Options{EnhanceContrast: true, Sharpen: true}
}

// Segmenter produces a per-pixel foreground probability mask for an
// encoded image, in row-major order, one value per pixel.
type Segmenter interface {
	Mask(ctx context.Context, imageDataURI string) ([]float64, error)
}

// Result is the processed bitmap plus its encoded form for the OCR
// handoff.
type Result struct {
	Image   *image.NRGBA
	DataURI string
}

// Preprocess decodes data and runs the enabled stages in order: resize,
// background removal, contrast, sharpen, adaptive threshold. A failing
// segmentation call is logged and skipped; every other failure aborts.
// seg may be nil, in which case background removal is skipped outright.
func Preprocess(ctx context.Context, data []byte, opts Options, seg Segmenter) (*Result, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx()*b.Dy() > maxInputPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrCanvasAllocation, b.Dx(), b.Dy())
	}

	img := resizeIfNeeded(src)

	if opts.RemoveBackground {
		masked, err := removeBackground(ctx, img, seg)
		if err != nil {
			log.Warn().Err(err).Msg("background removal failed, continuing without it")
		} else {
			img = masked
		}
	}

	if opts.EnhanceContrast {
		enhanceContrast(img, contrastFactor)
	}
	if opts.Sharpen {
		img = sharpen(img)
	}
	if opts.Threshold {
		img = adaptiveThreshold(img, 15, 10)
	}

	return &Result{Image: img, DataURI: EncodeDataURI(img)}, nil
}

// resizeIfNeeded scales the image down so the longer side equals
// MaxDimension, preserving aspect ratio. Images already within bounds are
// cloned unchanged.
func resizeIfNeeded(src image.Image) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return imaging.Clone(src)
	}
	if w >= h {
		return imaging.Resize(src, MaxDimension, 0, imaging.Linear)
	}
	return imaging.Resize(src, 0, MaxDimension, imaging.Linear)
}

// removeBackground asks the segmenter for a foreground probability mask
// and writes it into the alpha channel as alpha = round((1-p)*255).
func removeBackground(ctx context.Context, img *image.NRGBA, seg Segmenter) (*image.NRGBA, error) {
	if seg == nil {
		return nil, fmt.Errorf("no segmenter configured")
	}
	mask, err := seg.Mask(ctx, EncodeDataURI(img))
	if err != nil {
		return nil, err
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if len(mask) != w*h {
		return nil, fmt.Errorf("mask has %d values for %d pixels", len(mask), w*h)
	}
	out := imaging.Clone(img)
	for i, p := range mask {
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		out.Pix[i*4+3] = uint8(math.Round((1 - p) * 255))
	}
	return out, nil
}

// EncodeDataURI encodes img as a base64 PNG data URI, the handoff format
// for the external OCR and segmentation services.
func EncodeDataURI(img image.Image) string {
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
