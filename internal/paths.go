package internal

import (
	"path/filepath"
	"strings"
)

// Version is the application version, overridable at build time via -ldflags.
var Version = "1.0.0"

// stem returns the catalog path without its extension.
func stem(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
}

// DefaultOutputPath derives the translated catalog path from the source path.
// "locales/app.po" becomes "locales/app_translated.po".
func DefaultOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".po"
	}
	return stem(sourcePath) + "_translated" + ext
}

// DefaultProgressPath derives the progress file path from the source path.
// "locales/app.po" becomes "locales/app_progress.yaml".
func DefaultProgressPath(sourcePath string) string {
	return stem(sourcePath) + "_progress.yaml"
}

// DefaultCachePath derives the translation-memory database path from the
// source path.
func DefaultCachePath(sourcePath string) string {
	return stem(sourcePath) + "_cache.db"
}
