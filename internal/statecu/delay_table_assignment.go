package statecu

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

const (
	dlaPairsColumn = 14
	dlaPairWidth   = 16
)

var (
	dlaCard = []fixedformat.Field{fixedformat.S(12), fixedformat.I(2)}
	dlaPair = []fixedformat.Field{fixedformat.F(8), fixedformat.S(8)}
)

// ReadDelayTableAssignments reads a delay table assignment (.dla) file.
func ReadDelayTableAssignments(path string, opts Options) ([]*models.DelayTableAssignment, error) {
	opts = opts.WithDefaults()
	opts.Logger.Info("reading delay table assignment file", slog.String("path", path))
	var out []*models.DelayTableAssignment
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		out, err = parseAssignments(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseDelayTableAssignments reads assignment records from r.
func ParseDelayTableAssignments(r io.Reader, opts Options) ([]*models.DelayTableAssignment, error) {
	return parseAssignments(r, "", opts.WithDefaults())
}

func parseAssignments(r io.Reader, path string, opts Options) ([]*models.DelayTableAssignment, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options)
	out := []*models.DelayTableAssignment{}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		a := models.NewDelayTableAssignment()
		v := fixedformat.FixedRead(line, dlaCard)
		a.SetID(v[0].Trimmed())
		if v[1].OK {
			a.SetNumDelayTables(v[1].Int)
		}
		for i := range a.NumDelayTables() {
			pv := fixedformat.FixedRead(fixedformat.FromColumn(line, dlaPairsColumn+i*dlaPairWidth), dlaPair)
			if pv[0].OK {
				a.SetDelayTablePercent(pv[0].Float, i)
			}
			a.SetDelayTableID(pv[1].Trimmed(), i)
		}
		a.SetDirty(false)
		a.SetDataSet(opts.DataSet)
		out = append(out, a)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteDelayTableAssignments writes a delay table assignment file.
func WriteDelayTableAssignments(path string, data []*models.DelayTableAssignment, opts Options) error {
	opts = opts.WithDefaults()
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeAssignments(w, data)
	})
	if err != nil {
		return fmt.Errorf("failed to write delay table assignments: %w", err)
	}
	return nil
}

// EncodeDelayTableAssignments writes a complete assignment file to w.
func EncodeDelayTableAssignments(w io.Writer, data []*models.DelayTableAssignment, opts Options) error {
	opts = opts.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodeAssignments(w, data)
}

func encodeAssignments(w io.Writer, data []*models.DelayTableAssignment) error {
	p := fixedformat.NewPrinter(w)
	p.Println(
		"#>",
		"#>  StateCU Delay Table Assignment (DLA) File",
		"#>",
		"#>  Record format (a12,i2,20(f8.2,a8))",
		"#>",
		"#>  ID              :  CU Location identifier",
		"#>  ND              :  Number of delay tables",
		"#>  Pct             :  Percent of flow that uses the delay table",
		"#>  DTID            :  Delay table identifier",
		"#>",
		"#>    ID    ND   Pct   DTID",
		"#>---------ebeb------eb------eb------eb------eb------e...",
		"#>EndHeader",
	)
	for _, a := range data {
		if a == nil {
			continue
		}
		line := fmt.Sprintf("%-12.12s%2d", a.ID(), a.NumDelayTables())
		for i := range a.NumDelayTables() {
			line += fixedformat.FormatFloat(a.DelayTablePercent(i), 8, 2) + fixedformat.RightString(a.DelayTableID(i), 8)
		}
		p.Println(line)
	}
	return p.Err()
}
