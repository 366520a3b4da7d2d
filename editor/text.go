package editor

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// ErrNotText is returned when a file's bytes are not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// readText returns the full contents of path as a string.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s (%s)", ErrNotText, path, describeBytes(data))
	}
	return string(data), nil
}

// describeBytes names what non-UTF-8 content looks like, for error messages.
func describeBytes(data []byte) string {
	desc := "detected " + mimetype.Detect(data).String()

	res, err := chardet.NewTextDetector().DetectBest(data)
	if err == nil && res.Charset != "" {
		desc += fmt.Sprintf(", likely charset %s", res.Charset)
	}
	return desc
}
