package statemod

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

const delayValuesPerLine = 12

// ReadDelayTables reads a delay table file (.dly monthly, .dld daily).
// Values are free format and a table may continue over several lines until
// its value count is reached.
func ReadDelayTables(path string, opts DelayTableOptions) ([]*models.DelayTable, error) {
	opts.Options = opts.Options.WithDefaults()
	opts.Logger.Info("reading delay table file",
		slog.String("path", path),
		slog.Bool("monthly", opts.Monthly),
		slog.Int("interv", opts.Interv))
	var tables []*models.DelayTable
	err := fixedformat.ReadFile(path, opts.Options.Options, func(r io.Reader) error {
		var err error
		tables, err = parseDelayTables(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// ParseDelayTables reads delay tables from r.
func ParseDelayTables(r io.Reader, opts DelayTableOptions) ([]*models.DelayTable, error) {
	opts.Options = opts.Options.WithDefaults()
	return parseDelayTables(r, "", opts)
}

func parseDelayTables(r io.Reader, path string, opts DelayTableOptions) ([]*models.DelayTable, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options.Options)
	tables := []*models.DelayTable{}
	var (
		cur     *models.DelayTable
		numRead int
		total   int
		reading bool
	)
	finish := func() {
		cur.SetDirty(false)
		cur.SetDataSet(opts.DataSet)
		tables = append(tables, cur)
		reading = false
	}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if fixedformat.HasPrefix(line, opts.CommentMarkers) {
			continue
		}
		tokens := strings.Fields(line)
		if !reading {
			cur = models.NewDelayTable(opts.Monthly)
			cur.SetTableID(tokens[0])
			tokens = tokens[1:]
			total = opts.Interv
			if opts.Interv < 0 {
				total = 0
				if len(tokens) > 0 {
					if n, err := strconv.Atoi(tokens[0]); err == nil {
						total = n
					}
					tokens = tokens[1:]
				}
			}
			cur.SetUnits(opts.units())
			numRead = 0
			reading = true
		}
		for _, tok := range tokens {
			// Нечисловые значения пропускаются, но учитываются в счётчике
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				cur.AddValue(v)
			}
			numRead++
		}
		if numRead >= total {
			finish()
		}
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	if reading {
		return nil, lr.Errorf(fixedformat.ErrUnexpectedEOF,
			"delay table %s has %d of %d values", cur.TableID(), numRead, total)
	}
	return tables, nil
}

// WriteDelayTables writes a delay table file with values formatted to
// opts.Precision decimals, twelve per line.
func WriteDelayTables(path string, tables []*models.DelayTable, opts DelayTableOptions) error {
	opts.Options = opts.Options.WithDefaults()
	opts.Logger.Info("writing delay tables",
		slog.String("path", path),
		slog.String("previous", opts.Header.PreviousFile))
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeDelayTables(w, tables, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to write delay tables: %w", err)
	}
	return nil
}

// EncodeDelayTables writes a complete delay table file to w.
func EncodeDelayTables(w io.Writer, tables []*models.DelayTable, opts DelayTableOptions) error {
	opts.Options = opts.Options.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodeDelayTables(w, tables, opts)
}

func encodeDelayTables(w io.Writer, tables []*models.DelayTable, opts DelayTableOptions) error {
	p := fixedformat.NewPrinter(w)
	p.Println(delayTableHeader...)
	precision := opts.precision()
	indent := strings.Repeat(" ", 8)
	if opts.Interv < 0 {
		indent = strings.Repeat(" ", 12)
	}
	for _, t := range tables {
		if t == nil {
			continue
		}
		var line strings.Builder
		line.WriteString(fixedformat.RightString(t.TableID(), 8))
		if opts.Interv < 0 {
			fmt.Fprintf(&line, "%4d", t.Ndly())
		}
		values := t.Values()
		written := 0
		for {
			if written > 0 {
				line.Reset()
				line.WriteString(indent)
			}
			n := min(len(values)-written, delayValuesPerLine)
			for _, v := range values[written : written+n] {
				s, ok := fixedformat.FormatFloatSeparated(v, 8, precision)
				if !ok {
					opts.Logger.Warn("delay table value has no separating blank",
						slog.String("id", t.TableID()),
						slog.Float64("value", v))
				}
				line.WriteString(s)
			}
			p.Println(line.String())
			written += n
			if written >= len(values) {
				break
			}
		}
	}
	return p.Err()
}

var delayTableHeader = []string{
	"#>",
	"#> *******************************************************",
	"#> StateMod Delay (Return flow) Table",
	"#>",
	"#>     Format (a8, i4, (12f8.2)",
	"#>",
	"#>   ID       idly: Delay table id",
	"#>   Ndly     ndly: Number of entries in delay table idly.",
	"#>                  Include only if \"interv\" in the",
	"#>                  control file is equal to -1.",
	"#>                  interv = -1 = Variable number of entries",
	"#>                                as percent (0-100)",
	"#>                  interv = -100 = Variable number of entries",
	"#>                                as fraction (0-1)",
	"#>   Ret  dlyrat(1-n,idl): Return for month n, station idl",
	"#>",
	"#> ID   Ndly  Ret1    Ret2    Ret3    Ret4    Ret5    Ret6    Ret7    Ret8    Ret9    Ret10   Ret11   Ret12",
	"#>-----eb--eb------eb------eb------eb------eb------eb------eb------eb------eb------eb------eb------eb------e...next line",
	"#>EndHeader",
	"#>",
}
