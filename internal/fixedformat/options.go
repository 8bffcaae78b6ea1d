package fixedformat

import (
	"log/slog"
	"strings"
)

const (
	// DefaultCommentMarker starts a plain comment line.
	DefaultCommentMarker = "#"
	// DefaultHeaderMarker starts a header-only line that documents the
	// layout and is regenerated on every write.
	DefaultHeaderMarker = "#>"

	maxLineLength = 1024 * 1024
)

// Options is shared by the file readers and writers.
type Options struct {
	Logger         *slog.Logger
	Encoding       string
	CommentMarkers []string
	HeaderMarkers  []string
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if len(o.CommentMarkers) == 0 {
		o.CommentMarkers = []string{DefaultCommentMarker}
	}
	if len(o.HeaderMarkers) == 0 {
		o.HeaderMarkers = []string{DefaultHeaderMarker}
	}
	return o
}

// IsComment reports whether a line is blank or starts with one of markers.
func IsComment(line string, markers []string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	return HasPrefix(line, markers)
}

// HasPrefix reports whether line starts with any of the markers.
func HasPrefix(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
