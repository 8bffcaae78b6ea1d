package statemod

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

var rightCard = []fixedformat.Field{
	fixedformat.S(12), fixedformat.S(24), fixedformat.S(12),
	fixedformat.S(16), fixedformat.F(8), fixedformat.I(8),
}

// ReadDiversionRights reads a diversion right (.ddr) file.
func ReadDiversionRights(path string, opts Options) ([]*models.DiversionRight, error) {
	opts = opts.WithDefaults()
	opts.Logger.Info("reading diversion rights file", slog.String("path", path))
	var rights []*models.DiversionRight
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		rights, err = parseRights(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rights, nil
}

// ParseDiversionRights reads right records from r.
func ParseDiversionRights(r io.Reader, opts Options) ([]*models.DiversionRight, error) {
	return parseRights(r, "", opts.WithDefaults())
}

func parseRights(r io.Reader, path string, opts Options) ([]*models.DiversionRight, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options)
	rights := []*models.DiversionRight{}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		v := fixedformat.FixedRead(line, rightCard)
		right := models.NewDiversionRight()
		right.SetID(v[0].Trimmed())
		right.SetName(v[1].Trimmed())
		right.SetCgoto(v[2].Trimmed())
		if s := v[3].Trimmed(); s != "" {
			right.SetAdminNumber(s)
		}
		if v[4].OK {
			right.SetDecree(v[4].Float)
		}
		if v[5].OK {
			right.SetSwitch(v[5].Int)
		}
		right.SetDirty(false)
		right.SetDataSet(opts.DataSet)
		rights = append(rights, right)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	return rights, nil
}

// WriteDiversionRights writes a diversion right file.
func WriteDiversionRights(path string, rights []*models.DiversionRight, opts Options) error {
	opts = opts.WithDefaults()
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeRights(w, rights)
	})
	if err != nil {
		return fmt.Errorf("failed to write diversion rights: %w", err)
	}
	return nil
}

// EncodeDiversionRights writes a complete right file to w.
func EncodeDiversionRights(w io.Writer, rights []*models.DiversionRight, opts Options) error {
	opts = opts.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodeRights(w, rights)
}

func encodeRights(w io.Writer, rights []*models.DiversionRight) error {
	p := fixedformat.NewPrinter(w)
	p.Println(
		"#>",
		"#> *******************************************************",
		"#>  Diversion Right File",
		"#>",
		"#>  Card format (a12, a24, a12, f16.5, f8.2, i8)",
		"#>",
		"#>  ID        cidvri:  Diversion right ID",
		"#>  Name      nameri:  Diversion right name",
		"#>  Struct    cgoto:   Diversion station ID tied to this right",
		"#>  Admin #   irtem:   Administration number (priority)",
		"#>  Decree    dcrdiv:  Decreed amount (CFS)",
		"#>  On/Off    idvrsw:  Switch 0=off, 1=on",
		"#>",
		"#> ID               Name              Struct          Admin #   Decree  On/Off",
		"#>---------eb----------------------eb----------eb--------------eb------eb------e",
		"#>EndHeader",
	)
	for _, r := range rights {
		if r == nil {
			continue
		}
		p.Printf("%-12.12s%-24.24s%-12.12s%16.16s%s%8d",
			r.ID(), r.Name(), r.Cgoto(), r.AdminNumber(),
			fixedformat.FormatFloat(r.Decree(), 8, 2), r.Switch())
	}
	return p.Err()
}
