// Package listfile reads and writes delimited list files: a carried comment
// header, one row of quoted field names and one row per record.
package listfile

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iudanet/statemod/internal/fixedformat"
)

// DefaultDelimiter separates values when none is configured.
const DefaultDelimiter = ","

var (
	ErrBadDelimiter  = errors.New("delimiter must be a single character")
	ErrMissingHeader = errors.New("list file has no field header row")
)

// Options controls list file reading and writing.
type Options struct {
	fixedformat.Options
	Header    fixedformat.HeaderOptions
	Delimiter string
	// Update keeps the header comments of an existing file at the output path.
	Update bool
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

func (o Options) header(path string) fixedformat.HeaderOptions {
	h := o.Header
	if h.PreviousFile == "" && o.Update {
		h.PreviousFile = path
	}
	if len(h.CommentMarkers) == 0 {
		h.CommentMarkers = o.CommentMarkers
	}
	if len(h.IgnoredMarkers) == 0 {
		h.IgnoredMarkers = o.HeaderMarkers
	}
	if h.Encoding == "" {
		h.Encoding = o.Encoding
	}
	return h
}

// SideFileName inserts a suffix before the extension: diversions.txt with
// suffix ReturnFlows becomes diversions_ReturnFlows.txt.
func SideFileName(path, suffix string) string {
	ext := filepath.Ext(path)
	front := strings.TrimSuffix(path, ext)
	return front + "_" + suffix + ext
}

// Quote wraps a value in double quotes when it contains the delimiter.
func Quote(value, delimiter string) string {
	if delimiter != "" && strings.Contains(value, delimiter) {
		return `"` + value + `"`
	}
	return value
}

// FormatFloat writes the shortest text that reads back to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt writes an integer value.
func FormatInt(v int) string { return strconv.Itoa(v) }
