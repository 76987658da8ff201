package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Save writes text to path, creating parent directories as needed. The file
// is replaced atomically so readers never observe a partial corpus.
func Save(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create directory %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("could not write corpus file %s: %w", path, err)
	}
	return nil
}

// Load reads a corpus file written by Save, or any UTF-8 text file.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read corpus file: %w", err)
	}
	return string(data), nil
}
