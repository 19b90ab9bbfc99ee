package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
	"billscan/pkg/scan"
	"billscan/pkg/segment"
)

// scanfile runs the pipeline once on a single image and prints the
// parse result as indented JSON.
func main() {
	imagePath := flag.String("image", "", "path to the receipt image (required)")
	lang := flag.String("lang", "eng", "tesseract language")
	segmentURL := flag.String("segment-url", "", "segmentation service URL (empty disables background removal)")
	contrast := flag.Bool("contrast", true, "enhance contrast")
	sharpen := flag.Bool("sharpen", true, "sharpen")
	threshold := flag.Bool("threshold", false, "adaptive threshold")
	removeBG := flag.Bool("remove-bg", false, "background removal (needs -segment-url)")
	verbose := flag.Bool("verbose", false, "verbose logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Str("image", *imagePath).Msg("cannot read image")
	}

	engine := ocr.NewTesseract()
	engine.Language = *lang
	var seg preprocess.Segmenter
	if *segmentURL != "" {
		seg = segment.NewClient(*segmentURL, 120*time.Second)
	}
	svc := scan.New(engine, seg)

	opts := preprocess.Options{
		EnhanceContrast:  *contrast,
		Sharpen:          *sharpen,
		Threshold:        *threshold,
		RemoveBackground: *removeBG,
	}

	result, err := svc.Scan(context.Background(), data, opts, func(p int) {
		log.Debug().Int("percent", p).Msg("ocr progress")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode failed")
	}
	fmt.Println(string(out))
}
