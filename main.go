package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"billscan/config"
	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
	"billscan/pkg/scan"
	"billscan/pkg/segment"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	engine := ocr.NewTesseract()
	engine.Language = cfg.TesseractLang

	var seg preprocess.Segmenter
	if cfg.SegmentURL != "" {
		seg = segment.NewClient(cfg.SegmentURL, cfg.SegmentTimeout)
		log.Info().Str("url", cfg.SegmentURL).Msg("background removal enabled")
	}

	svc := scan.New(engine, seg)

	r := gin.Default()
	setupRoutes(r, svc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("starting scan service")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
