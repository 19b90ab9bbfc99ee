package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
)

type fakeEngine struct {
	text     string
	err      error
	progress []int
}

func (f *fakeEngine) Recognize(ctx context.Context, imageDataURI string, progress ocr.ProgressFunc) (string, error) {
	if f.err != nil {
		return "", fmt.Errorf("%w: %v", ocr.ErrOCRService, f.err)
	}
	for _, p := range f.progress {
		if progress != nil {
			progress(p)
		}
	}
	return f.text, nil
}

func testImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(32, 32, color.NRGBA{240, 240, 240, 255})))
	return buf.Bytes()
}

func TestScanHappyPath(t *testing.T) {
	engine := &fakeEngine{
		text:     "Hotel Sagar\nButter Naan 2x ₹40\nTotal ₹80.00\n",
		progress: []int{0, 40, 100},
	}
	svc := New(engine, nil)

	var seen []int
	res, err := svc.Scan(context.Background(), testImage(t), preprocess.DefaultOptions(), func(p int) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Butter Naan", res.Items[0].Name)
	assert.Equal(t, 2, res.Items[0].Quantity)
	require.NotNil(t, res.Metadata.Total)
	assert.Equal(t, 80.0, *res.Metadata.Total)

	// Progress passes through in order.
	assert.Equal(t, []int{0, 40, 100}, seen)
}

func TestScanEngineFailure(t *testing.T) {
	svc := New(&fakeEngine{err: errors.New("tesseract missing")}, nil)
	_, err := svc.Scan(context.Background(), testImage(t), preprocess.DefaultOptions(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ocr.ErrOCRService))
}

func TestScanUndecodableImage(t *testing.T) {
	svc := New(&fakeEngine{text: "x"}, nil)
	_, err := svc.Scan(context.Background(), []byte("junk"), preprocess.DefaultOptions(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, preprocess.ErrImageDecode))
}

func TestScanZeroItemsIsNotAnError(t *testing.T) {
	svc := New(&fakeEngine{text: "Thank you\nVisit again\n"}, nil)
	res, err := svc.Scan(context.Background(), testImage(t), preprocess.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}
