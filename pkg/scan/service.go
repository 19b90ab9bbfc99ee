// Package scan wires the pipeline together: preprocess the photo, hand
// the encoded result to the OCR engine, parse the recognized text.
package scan

import (
	"context"

	"github.com/rs/zerolog/log"

	"billscan/pkg/billparse"
	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
)

// Service runs the image-to-items pipeline. It holds no per-call state;
// a single Service may serve concurrent scans on independent inputs.
type Service struct {
	Engine    ocr.Engine
	Segmenter preprocess.Segmenter // nil disables background removal
}

// New builds a Service around the given OCR engine and optional
// segmenter.
func New(engine ocr.Engine, seg preprocess.Segmenter) *Service {
	return &Service{Engine: engine, Segmenter: seg}
}

// Scan preprocesses the raw photo bytes, recognizes text and parses it.
// Preprocessing failures (other than segmentation, which is recovered
// internally) and OCR failures surface as typed errors; parsing never
// fails. progress may be nil.
func (s *Service) Scan(ctx context.Context, image []byte, opts preprocess.Options, progress ocr.ProgressFunc) (*billparse.ParseResult, error) {
	pre, err := preprocess.Preprocess(ctx, image, opts, s.Segmenter)
	if err != nil {
		return nil, err
	}

	text, err := s.Engine.Recognize(ctx, pre.DataURI, progress)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("chars", len(text)).Msg("ocr text recognized")

	result := billparse.Parse(text)
	log.Info().Int("items", len(result.Items)).Msg("receipt parsed")
	return result, nil
}

// Preprocess exposes the preprocessing stage alone, using the service's
// segmenter. Used by the inspection endpoint and debug tooling.
func (s *Service) Preprocess(ctx context.Context, image []byte, opts preprocess.Options) (*preprocess.Result, error) {
	return preprocess.Preprocess(ctx, image, opts, s.Segmenter)
}
