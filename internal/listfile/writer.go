package listfile

import (
	"io"
	"strings"

	"github.com/iudanet/statemod/internal/fixedformat"
)

// Write writes a list file to path. Header comments of the previous file are
// carried when Update is set or a previous file is named.
func Write(path string, fields []string, rows [][]string, opts Options) error {
	hdr, err := fixedformat.NewHeader(opts.header(path))
	if err != nil {
		return err
	}
	return fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeRows(w, fields, rows, opts.delimiter())
	})
}

// Encode writes a list file to w with a fresh header.
func Encode(w io.Writer, fields []string, rows [][]string, opts Options) error {
	if err := fixedformat.WriteHeader(w, opts.header("")); err != nil {
		return err
	}
	return encodeRows(w, fields, rows, opts.delimiter())
}

func encodeRows(w io.Writer, fields []string, rows [][]string, delim string) error {
	p := fixedformat.NewPrinter(w)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = `"` + f + `"`
	}
	p.Println(strings.Join(names, delim))
	for _, row := range rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = Quote(strings.TrimSpace(v), delim)
		}
		p.Println(strings.Join(values, delim))
	}
	return p.Err()
}
