// Package iocli is the terminal seam of the CLI, so commands can be tested
// without a console.
package iocli

import (
	"io"
	"strings"
)

//go:generate moq -out io_mock.go . IO

// Output receives command reports and record listings.
type Output interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	// Width returns the terminal width in columns, or 0 when output is
	// not a terminal.
	Width() int
}

// Prompter asks for values the settings do not hold, such as the
// manifest secret or a confirmation.
type Prompter interface {
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// IO is the console of one statemod invocation.
type IO interface {
	Output
	Prompter
}

// Confirm asks a yes/no question. Anything but y or yes, including a
// read error or end of input, is a no.
func Confirm(p Prompter, question string) bool {
	answer, err := p.ReadInput(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
