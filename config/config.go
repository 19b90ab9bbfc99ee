// Package config loads service configuration from the environment, with
// an optional local .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime settings for the scan service.
type Config struct {
	// Server
	Port int

	// OCR engine
	TesseractLang string

	// Segmentation service; empty URL disables background removal.
	SegmentURL     string
	SegmentTimeout time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first without overriding variables that
// are already set.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	return &Config{
		Port:           getEnvInt("PORT", 8081),
		TesseractLang:  getEnvString("TESSERACT_LANG", "eng"),
		SegmentURL:     os.Getenv("SEGMENT_URL"),
		SegmentTimeout: time.Duration(getEnvInt("SEGMENT_TIMEOUT_SECONDS", 120)) * time.Second,
		LogLevel:       getEnvString("LOG_LEVEL", "info"),
	}
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("fallback", fallback).Msg("invalid integer in environment")
		return fallback
	}
	return n
}
