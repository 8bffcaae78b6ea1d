package fixedformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding maps a configured encoding name to a text encoding.
// Empty means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

type readCloser struct {
	io.Reader
	f *os.File
}

func (r readCloser) Close() error { return r.f.Close() }

// OpenReader opens path and decodes it from the named encoding.
func OpenReader(path, enc string) (io.ReadCloser, error) {
	e, err := LookupEncoding(enc)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return readCloser{Reader: e.NewDecoder().Reader(f), f: f}, nil
}

type writeCloser struct {
	buf  *bufio.Writer
	tw   *transform.Writer
	f    *os.File
	path string
}

func (w *writeCloser) Write(p []byte) (int, error) { return w.buf.Write(p) }

// Close flushes the buffered and encoded output and moves the temporary
// file over path. On any failure the temporary file is removed and path
// keeps its old content.
func (w *writeCloser) Close() error {
	err := w.buf.Flush()
	if cerr := w.tw.Close(); err == nil {
		err = cerr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	if err := os.Rename(w.f.Name(), w.path); err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	return nil
}

// discard drops everything written and leaves path untouched.
func (w *writeCloser) discard() {
	_ = w.f.Close()
	_ = os.Remove(w.f.Name())
}

// CreateWriter encodes everything written to the named encoding. Output
// goes to a temporary file in the directory of path, which replaces path
// on Close, so path may also be the file the header was read from.
func CreateWriter(path, enc string) (io.WriteCloser, error) {
	return createWriter(path, enc)
}

func createWriter(path, enc string) (*writeCloser, error) {
	e, err := LookupEncoding(enc)
	if err != nil {
		return nil, err
	}

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	tw := transform.NewWriter(f, e.NewEncoder())
	return &writeCloser{buf: bufio.NewWriter(tw), tw: tw, f: f, path: path}, nil
}

// ReadFile opens path, hands the decoded stream to fn and closes it on
// every exit path.
func ReadFile(path string, opts Options, fn func(r io.Reader) error) (err error) {
	r, err := OpenReader(path, opts.Encoding)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return fn(r)
}

// WriteFile hands an encoded stream to fn and replaces path with the
// output only when fn and the final flush succeed.
func WriteFile(path string, opts Options, fn func(w io.Writer) error) error {
	w, err := createWriter(path, opts.Encoding)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		w.discard()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// LineReader reads a record file line by line and keeps the line number for
// error reports.
type LineReader struct {
	sc      *bufio.Scanner
	path    string
	markers []string
	line    int
}

// NewLineReader wraps r. Comment markers come from opts.
func NewLineReader(r io.Reader, path string, opts Options) *LineReader {
	opts = opts.WithDefaults()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &LineReader{sc: sc, path: path, markers: opts.CommentMarkers}
}

// Next returns the next line that is neither blank nor a comment.
func (lr *LineReader) Next() (string, bool) {
	for lr.sc.Scan() {
		lr.line++
		line := strings.TrimRight(lr.sc.Text(), "\r")
		if IsComment(line, lr.markers) {
			continue
		}
		return line, true
	}
	return "", false
}

// Raw returns the next physical line without skipping comments.
func (lr *LineReader) Raw() (string, bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	lr.line++
	return strings.TrimRight(lr.sc.Text(), "\r"), true
}

// Line is the number of the line returned last.
func (lr *LineReader) Line() int { return lr.line }

// Err returns the scanner error, if any.
func (lr *LineReader) Err() error {
	if err := lr.sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", lr.displayPath(), err)
	}
	return nil
}

// Errorf builds a ParseError at the current line.
func (lr *LineReader) Errorf(err error, format string, args ...any) error {
	if format != "" {
		err = fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	}
	return &ParseError{Err: err, Path: lr.path, Line: lr.line}
}

// EOF returns a ParseError for a record cut short by the end of input.
func (lr *LineReader) EOF(what string) error {
	if err := lr.Err(); err != nil {
		return err
	}
	return lr.Errorf(ErrUnexpectedEOF, "%s", what)
}

func (lr *LineReader) displayPath() string {
	if lr.path == "" {
		return "input"
	}
	return lr.path
}

// IsParseError reports whether err came from malformed record structure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Printer writes formatted lines and keeps the first write error, so a
// record writer can check once at the end.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter wraps w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Printf writes a formatted line followed by a newline.
func (p *Printer) Printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Print writes s without a newline.
func (p *Printer) Print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// Println writes each line followed by a newline.
func (p *Printer) Println(lines ...string) {
	for _, l := range lines {
		p.Print(l + "\n")
	}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	if p.err != nil {
		return fmt.Errorf("failed to write record: %w", p.err)
	}
	return nil
}
