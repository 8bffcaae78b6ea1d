package fixedformat

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF       = errors.New("unexpected end of file inside record")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
	ErrValueOverflow       = errors.New("value does not fit field width")
)

// ParseError is a record-level error tied to an input line.
type ParseError struct {
	Err  error
	Path string
	Line int
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
