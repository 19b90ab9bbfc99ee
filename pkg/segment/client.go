// Package segment is the client for the external image-segmentation
// service used for optional background removal. The service takes an
// encoded image and returns a per-pixel foreground probability mask in
// row-major order.
package segment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrSegmentation marks any failure of the segmentation call: transport
// error, non-2xx status, or an unusable mask. Callers recover by skipping
// background removal.
var ErrSegmentation = errors.New("segmentation service failed")

const defaultTimeout = 120 * time.Second

// Client talks to the segmentation service over HTTP.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the service at baseURL. A zero timeout
// falls back to a generous default; model inference is slow.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

type maskRequest struct {
	Image string `json:"image"`
}

type maskResponse struct {
	Mask []float64 `json:"mask"`
}

// Mask submits the encoded image and returns the foreground probability
// mask, one value per pixel.
func (c *Client) Mask(ctx context.Context, imageDataURI string) ([]float64, error) {
	var out maskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(maskRequest{Image: imageDataURI}).
		SetResult(&out).
		Post("/segment")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSegmentation, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %s", ErrSegmentation, resp.Status())
	}
	if len(out.Mask) == 0 {
		return nil, fmt.Errorf("%w: empty mask in response", ErrSegmentation)
	}
	return out.Mask, nil
}
