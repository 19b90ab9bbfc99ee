package segment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	var gotBody maskRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/segment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(maskResponse{Mask: []float64{0, 0.5, 1, 0.25}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	mask, err := c.Mask(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1, 0.25}, mask)
	assert.Equal(t, "data:image/png;base64,AAAA", gotBody.Image)
}

func TestMaskServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	_, err := c.Mask(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSegmentation))
}

func TestMaskEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mask": []}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	_, err := c.Mask(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSegmentation))
}

func TestMaskCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(ts.URL, time.Second)
	_, err := c.Mask(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSegmentation))
}
