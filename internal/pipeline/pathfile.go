package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrVideoPathMissing is returned when the path file does not exist.
	ErrVideoPathMissing = errors.New("video path file not found")
	// ErrVideoPathEmpty is returned when the path file holds only whitespace.
	ErrVideoPathEmpty = errors.New("video path file is empty")
)

// ReadVideoPath returns the trimmed content of the path file.
func ReadVideoPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrVideoPathMissing, path)
		}
		return "", fmt.Errorf("read video path file %s: %w", path, err)
	}
	videoPath := strings.TrimSpace(string(data))
	if videoPath == "" {
		return "", fmt.Errorf("%w: %s", ErrVideoPathEmpty, path)
	}
	return videoPath, nil
}
