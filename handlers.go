package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
	"billscan/pkg/scan"
)

func setupRoutes(r *gin.Engine, svc *scan.Service) {
	r.GET("/healthz", healthHandler)
	api := r.Group("/api")
	api.POST("/scan", scanHandler(svc))
	api.POST("/preprocess", preprocessHandler(svc))
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// scanHandler accepts a multipart "image" upload plus optional boolean
// form fields (contrast, sharpen, threshold, remove_bg) and responds
// with the parsed items and metadata.
func scanHandler(svc *scan.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := readImageUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts := optionsFromForm(c)

		progress := func(percent int) {
			log.Debug().Int("percent", percent).Msg("ocr progress")
		}
		result, err := svc.Scan(c.Request.Context(), data, opts, progress)
		if err != nil {
			status := statusForError(err)
			log.Error().Err(err).Int("status", status).Msg("scan failed")
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// preprocessHandler runs only the image pipeline and returns the encoded
// result, for inspecting what the OCR engine would actually see.
func preprocessHandler(svc *scan.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := readImageUpload(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts := optionsFromForm(c)

		res, err := svc.Preprocess(c.Request.Context(), data, opts)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"width":    res.Image.Bounds().Dx(),
			"height":   res.Image.Bounds().Dy(),
			"data_uri": res.DataURI,
		})
	}
}

func readImageUpload(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, errors.New("missing image file")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("cannot open image upload")
	}
	defer f.Close()
	return io.ReadAll(f)
}

// optionsFromForm starts from the defaults and applies any boolean form
// fields present on the request.
func optionsFromForm(c *gin.Context) preprocess.Options {
	opts := preprocess.DefaultOptions()
	if v, ok := formBool(c, "contrast"); ok {
		opts.EnhanceContrast = v
	}
	if v, ok := formBool(c, "sharpen"); ok {
		opts.Sharpen = v
	}
	if v, ok := formBool(c, "threshold"); ok {
		opts.Threshold = v
	}
	if v, ok := formBool(c, "remove_bg"); ok {
		opts.RemoveBackground = v
	}
	return opts
}

func formBool(c *gin.Context, key string) (bool, bool) {
	raw, ok := c.GetPostForm(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// statusForError maps pipeline failures to HTTP statuses: bad input is
// the client's fault, a failing OCR backend is a bad gateway.
func statusForError(err error) int {
	switch {
	case errors.Is(err, preprocess.ErrImageDecode):
		return http.StatusBadRequest
	case errors.Is(err, preprocess.ErrCanvasAllocation):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ocr.ErrOCRService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
