package preprocess

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(w, h, c)))
	return buf.Bytes()
}

type fakeSegmenter struct {
	mask []float64
	err  error
}

func (f *fakeSegmenter) Mask(ctx context.Context, imageDataURI string) ([]float64, error) {
	return f.mask, f.err
}

func TestPreprocessResizesLargeImages(t *testing.T) {
	data := encodePNG(t, 2048, 1024, color.NRGBA{200, 200, 200, 255})
	res, err := Preprocess(context.Background(), data, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1024, res.Image.Bounds().Dx())
	assert.Equal(t, 512, res.Image.Bounds().Dy())
}

func TestPreprocessResizePreservesAspectRatio(t *testing.T) {
	data := encodePNG(t, 900, 1800, color.NRGBA{200, 200, 200, 255})
	res, err := Preprocess(context.Background(), data, Options{}, nil)
	require.NoError(t, err)

	w := res.Image.Bounds().Dx()
	h := res.Image.Bounds().Dy()
	assert.Equal(t, 1024, h)
	assert.LessOrEqual(t, w, MaxDimension)
	// Aspect ratio within one pixel of the original 1:2.
	assert.InDelta(t, float64(h)*900.0/1800.0, float64(w), 1.0)
}

func TestPreprocessPassThroughSmallImages(t *testing.T) {
	data := encodePNG(t, 800, 600, color.NRGBA{10, 20, 30, 255})
	res, err := Preprocess(context.Background(), data, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 800, res.Image.Bounds().Dx())
	assert.Equal(t, 600, res.Image.Bounds().Dy())
	// All stages off: pixels come through untouched.
	assert.Equal(t, uint8(10), res.Image.Pix[0])
	assert.Equal(t, uint8(20), res.Image.Pix[1])
	assert.Equal(t, uint8(30), res.Image.Pix[2])
}

func TestPreprocessDecodeError(t *testing.T) {
	_, err := Preprocess(context.Background(), []byte("not an image"), DefaultOptions(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageDecode))
}

func TestPreprocessContrastKnownValue(t *testing.T) {
	// clamp(100*1.8 + 128*(1-1.8)) = 77.6, rounded to 78.
	data := encodePNG(t, 1, 1, color.NRGBA{100, 100, 100, 255})
	res, err := Preprocess(context.Background(), data, Options{EnhanceContrast: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(78), res.Image.Pix[0])
	assert.Equal(t, uint8(78), res.Image.Pix[1])
	assert.Equal(t, uint8(78), res.Image.Pix[2])
	assert.Equal(t, uint8(255), res.Image.Pix[3]) // alpha untouched
}

func TestPreprocessContrastClamps(t *testing.T) {
	data := encodePNG(t, 1, 1, color.NRGBA{250, 250, 250, 255})
	res, err := Preprocess(context.Background(), data, Options{EnhanceContrast: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), res.Image.Pix[0])
}

func TestPreprocessSharpenUniformImageUnchanged(t *testing.T) {
	// The kernel sums to 1, so a constant image is a fixed point.
	data := encodePNG(t, 6, 6, color.NRGBA{90, 120, 200, 255})
	res, err := Preprocess(context.Background(), data, Options{Sharpen: true}, nil)
	require.NoError(t, err)
	for i := 0; i < len(res.Image.Pix); i += 4 {
		assert.Equal(t, uint8(90), res.Image.Pix[i])
		assert.Equal(t, uint8(120), res.Image.Pix[i+1])
		assert.Equal(t, uint8(200), res.Image.Pix[i+2])
	}
}

func TestPreprocessThresholdUniformImageTurnsWhite(t *testing.T) {
	// Each pixel equals the local mean, and mean-10 is below it.
	data := encodePNG(t, 40, 40, color.NRGBA{128, 128, 128, 255})
	res, err := Preprocess(context.Background(), data, Options{Threshold: true}, nil)
	require.NoError(t, err)
	for i := 0; i < len(res.Image.Pix); i += 4 {
		assert.Equal(t, uint8(255), res.Image.Pix[i])
	}
}

func TestPreprocessThresholdDarkInkStaysBlack(t *testing.T) {
	img := imaging.New(40, 40, color.NRGBA{255, 255, 255, 255})
	for y := 18; y < 22; y++ {
		for x := 18; x < 22; x++ {
			img.Set(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	res, err := Preprocess(context.Background(), buf.Bytes(), Options{Threshold: true}, nil)
	require.NoError(t, err)

	center := res.Image.NRGBAAt(20, 20)
	corner := res.Image.NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), center.R)
	assert.Equal(t, uint8(255), corner.R)
}

func TestPreprocessDataURIFormat(t *testing.T) {
	data := encodePNG(t, 4, 4, color.NRGBA{128, 128, 128, 255})
	res, err := Preprocess(context.Background(), data, Options{}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))
}

func TestPreprocessBackgroundRemovalSetsAlpha(t *testing.T) {
	data := encodePNG(t, 2, 2, color.NRGBA{50, 50, 50, 255})
	seg := &fakeSegmenter{mask: []float64{1, 1, 0, 0.5}}
	res, err := Preprocess(context.Background(), data, Options{RemoveBackground: true}, seg)
	require.NoError(t, err)
	// alpha = round((1-p)*255)
	assert.Equal(t, uint8(0), res.Image.Pix[3])
	assert.Equal(t, uint8(0), res.Image.Pix[7])
	assert.Equal(t, uint8(255), res.Image.Pix[11])
	assert.Equal(t, uint8(128), res.Image.Pix[15])
}

func TestPreprocessSegmenterFailureIsRecovered(t *testing.T) {
	data := encodePNG(t, 2, 2, color.NRGBA{50, 50, 50, 255})
	seg := &fakeSegmenter{err: errors.New("model unavailable")}
	res, err := Preprocess(context.Background(), data, Options{RemoveBackground: true}, seg)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), res.Image.Pix[3]) // original alpha kept
}

func TestPreprocessMaskSizeMismatchIsRecovered(t *testing.T) {
	data := encodePNG(t, 2, 2, color.NRGBA{50, 50, 50, 255})
	seg := &fakeSegmenter{mask: []float64{1, 1}}
	res, err := Preprocess(context.Background(), data, Options{RemoveBackground: true}, seg)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), res.Image.Pix[3])
}

func TestPreprocessNilSegmenterIsRecovered(t *testing.T) {
	data := encodePNG(t, 2, 2, color.NRGBA{50, 50, 50, 255})
	res, err := Preprocess(context.Background(), data, Options{RemoveBackground: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Image.Bounds().Dx())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.EnhanceContrast)
	assert.True(t, opts.Sharpen)
	assert.False(t, opts.Threshold)
	assert.False(t, opts.RemoveBackground)
}
