package fixedformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"
)

const headerRevisionTag = "HeaderRevision"

// HeaderOptions controls the comment block written at the top of a file.
type HeaderOptions struct {
	// Now returns the time written to the header; time.Now when nil.
	Now func() time.Time
	// PreviousFile is an earlier version of the output. Its comment header is
	// carried into the new file and its revision number bumped. A missing
	// file means a fresh header.
	PreviousFile string
	// Program and User identify who wrote the file.
	Program string
	User    string
	// NewComments are added to the header, one comment line each.
	NewComments []string
	// CommentMarkers start comment lines; "#" when empty.
	CommentMarkers []string
	// IgnoredMarkers start header-only lines that are not carried; "#>" when empty.
	IgnoredMarkers []string
	// Encoding of the previous file; UTF-8 when empty.
	Encoding string
}

func (o HeaderOptions) commentMarkers() []string {
	if len(o.CommentMarkers) == 0 {
		return []string{DefaultCommentMarker}
	}
	return o.CommentMarkers
}

func (o HeaderOptions) ignoredMarkers() []string {
	if len(o.IgnoredMarkers) == 0 {
		return []string{DefaultHeaderMarker}
	}
	return o.IgnoredMarkers
}

// PreviousHeader holds what was carried from an earlier file.
type PreviousHeader struct {
	Comments []string
	Revision int
	Found    bool
}

// ReadPreviousHeader reads the leading comment block of path. Lines starting
// with an ignored marker and the old revision line are dropped. A missing
// file is not an error.
func ReadPreviousHeader(path string, opts HeaderOptions) (PreviousHeader, error) {
	var h PreviousHeader
	if path == "" {
		return h, nil
	}
	f, err := OpenReader(path, opts.Encoding)
	if errors.Is(err, fs.ErrNotExist) {
		return h, nil
	}
	if err != nil {
		return h, fmt.Errorf("failed to open previous file: %w", err)
	}
	defer f.Close()

	h.Found = true
	markers := opts.commentMarkers()
	ignored := opts.ignoredMarkers()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !HasPrefix(line, markers) {
			// Заголовок заканчивается на первой строке данных
			break
		}
		if HasPrefix(line, ignored) {
			continue
		}
		if rev, ok := parseRevision(line, markers); ok {
			h.Revision = rev
			continue
		}
		h.Comments = append(h.Comments, line)
	}
	if err := sc.Err(); err != nil {
		return h, fmt.Errorf("failed to read previous file: %w", err)
	}
	return h, nil
}

func parseRevision(line string, markers []string) (int, bool) {
	for _, m := range markers {
		rest, ok := strings.CutPrefix(line, m)
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimSpace(rest), headerRevisionTag)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, true
		}
		return n, true
	}
	return 0, false
}

// Header is a prepared header. The previous file is read when the Header is
// created, so the output may replace the previous file.
type Header struct {
	prev PreviousHeader
	opts HeaderOptions
}

// NewHeader reads the previous file named in opts and returns a Header
// ready to be written.
func NewHeader(opts HeaderOptions) (*Header, error) {
	prev, err := ReadPreviousHeader(opts.PreviousFile, opts)
	if err != nil {
		return nil, err
	}
	return &Header{prev: prev, opts: opts}, nil
}

// Revision returns the revision number the header will carry: 0 for a new
// file and one more than the previous file otherwise.
func (h *Header) Revision() int {
	if h.prev.Found {
		return h.prev.Revision + 1
	}
	return 0
}

// Write writes the revision line, the program, user and date lines, the new
// comments and then the comments carried from the previous file.
func (h *Header) Write(w io.Writer) error {
	now := time.Now
	if h.opts.Now != nil {
		now = h.opts.Now
	}
	c := h.opts.commentMarkers()[0]

	lines := []string{
		fmt.Sprintf("%s%s %d", c, headerRevisionTag, h.Revision()),
		c,
		c + " File generated by...",
		c + " program:   " + h.opts.Program,
		c + " user:      " + h.opts.User,
		c + " date:      " + now().UTC().Format("2006-01-02 15:04:05 MST"),
		c,
	}
	for _, nc := range h.opts.NewComments {
		lines = append(lines, strings.TrimRight(c+" "+nc, " "))
	}
	if len(h.opts.NewComments) > 0 {
		lines = append(lines, c)
	}
	if len(h.prev.Comments) > 0 {
		lines = append(lines,
			c+"-----------------------------------------------------------------------",
			c+" Comments from previous version of the file",
			c+"-----------------------------------------------------------------------",
		)
		lines = append(lines, h.prev.Comments...)
	}
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

// WriteHeader prepares and writes a header in one step.
func WriteHeader(w io.Writer, opts HeaderOptions) error {
	h, err := NewHeader(opts)
	if err != nil {
		return err
	}
	return h.Write(w)
}
