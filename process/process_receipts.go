package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"billscan/config"
	"billscan/pkg/ocr"
	"billscan/pkg/preprocess"
	"billscan/pkg/scan"
	"billscan/pkg/segment"
)

// Batch tool: scans a directory of receipt photos, runs the full
// pipeline on each and writes a <name>.json sidecar next to the image
// (or into -out). Optional watch mode keeps processing new files.
func main() {
	dirFlag := flag.String("dir", "public/receipts", "directory to scan for receipt images")
	outFlag := flag.String("out", "", "directory for JSON results (default: alongside images)")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	dryRun := flag.Bool("dry-run", false, "list candidate files without running OCR")
	verbose := flag.Bool("verbose", false, "verbose per-file logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *dryRun {
		files := listImageFiles(*dirFlag)
		log.Info().Str("dir", *dirFlag).Int("files", len(files)).Msg("dry-run: candidate files")
		for _, f := range files {
			log.Info().Str("file", f).Msg("candidate")
		}
		return
	}

	cfg := config.Load()
	engine := ocr.NewTesseract()
	engine.Language = cfg.TesseractLang
	var seg preprocess.Segmenter
	if cfg.SegmentURL != "" {
		seg = segment.NewClient(cfg.SegmentURL, cfg.SegmentTimeout)
	}
	svc := scan.New(engine, seg)

	outDir := *outFlag
	if outDir == "" {
		outDir = *dirFlag
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", outDir).Msg("cannot create output directory")
	}

	files := listImageFiles(*dirFlag)
	log.Info().Int("files", len(files)).Int("workers", effectiveWorkers(*workers)).Msg("scanning")
	runWorkerPool(svc, *dirFlag, outDir, files, effectiveWorkers(*workers))

	if *watch {
		if err := watchDirectory(svc, *dirFlag, outDir, effectiveWorkers(*workers)); err != nil {
			log.Fatal().Err(err).Msg("watch failed")
		}
	}
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

// worker pool orchestrator
func runWorkerPool(svc *scan.Service, dir, outDir string, initial []string, workers int, extraCh ...<-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(svc, dir, outDir, name)
			}
		}()
	}
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		for _, ch := range extraCh {
			go func(c <-chan string) {
				for n := range c {
					fileCh <- n
				}
			}(ch)
		}
		// scan-only mode closes the channel once the initial list is fed
		if len(extraCh) == 0 {
			close(fileCh)
		}
	}()
	if len(extraCh) == 0 {
		wg.Wait()
	}
}

// processSingleFile runs the pipeline on one image and writes its JSON
// sidecar. Files that already have a sidecar are skipped so re-runs are
// idempotent.
func processSingleFile(svc *scan.Service, dir, outDir, name string) {
	resultPath := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".json")
	if _, err := os.Stat(resultPath); err == nil {
		log.Debug().Str("file", name).Msg("skip: result exists")
		return
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("read failed")
		return
	}

	start := time.Now()
	result, err := svc.Scan(context.Background(), data, preprocess.DefaultOptions(), nil)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("scan failed")
		return
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("encode failed")
		return
	}
	if err := os.WriteFile(resultPath, out, 0o644); err != nil {
		log.Error().Err(err).Str("file", name).Msg("write failed")
		return
	}
	log.Info().
		Str("file", name).
		Int("items", len(result.Items)).
		Dur("took", time.Since(start)).
		Msg("processed")
}

func watchDirectory(svc *scan.Service, dir, outDir string, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("watching (debounced)")

	fileCh := make(chan string, 256)
	go func() {
		// debounce map of pending files; a file is considered stable
		// once no new event has arrived for it in 300ms
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond {
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Error().Err(err).Msg("watch error")
			}
		}
	}()

	go runWorkerPool(svc, dir, outDir, nil, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}
