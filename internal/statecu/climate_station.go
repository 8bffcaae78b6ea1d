package statecu

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

var climateCard = []fixedformat.Field{
	fixedformat.S(12), fixedformat.F(6), fixedformat.F(9),
	fixedformat.S(20), fixedformat.S(8), fixedformat.X(1), fixedformat.S(24),
}

// ReadClimateStations reads a climate station (.cli) file.
func ReadClimateStations(path string, opts Options) ([]*models.ClimateStation, error) {
	opts = opts.WithDefaults()
	opts.Logger.Info("reading climate station file", slog.String("path", path))
	var out []*models.ClimateStation
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		out, err = parseClimateStations(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseClimateStations reads climate station records from r.
func ParseClimateStations(r io.Reader, opts Options) ([]*models.ClimateStation, error) {
	return parseClimateStations(r, "", opts.WithDefaults())
}

func parseClimateStations(r io.Reader, path string, opts Options) ([]*models.ClimateStation, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options)
	out := []*models.ClimateStation{}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		v := fixedformat.FixedRead(line, climateCard)
		c := models.NewClimateStation()
		c.SetID(v[0].Trimmed())
		if v[1].OK {
			c.SetLatitude(v[1].Float)
		}
		if v[2].OK {
			c.SetElevation(v[2].Float)
		}
		c.SetRegion1(v[3].Trimmed())
		c.SetRegion2(v[4].Trimmed())
		c.SetName(v[6].Trimmed())
		c.SetDirty(false)
		c.SetDataSet(opts.DataSet)
		out = append(out, c)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteClimateStations writes a climate station file.
func WriteClimateStations(path string, stations []*models.ClimateStation, opts Options) error {
	opts = opts.WithDefaults()
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeClimateStations(w, stations)
	})
	if err != nil {
		return fmt.Errorf("failed to write climate stations: %w", err)
	}
	return nil
}

// EncodeClimateStations writes a complete climate station file to w.
func EncodeClimateStations(w io.Writer, stations []*models.ClimateStation, opts Options) error {
	opts = opts.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodeClimateStations(w, stations)
}

func encodeClimateStations(w io.Writer, stations []*models.ClimateStation) error {
	p := fixedformat.NewPrinter(w)
	p.Println(
		"#>",
		"#>  StateCU Climate Station File",
		"#>",
		"#>  Record format (a12,f6.2,f9.2,a20,a8,1x,a24)",
		"#>",
		"#>  ID         :  Station identifier",
		"#>  Lat        :  Latitude (decimal degrees)",
		"#>  Elev       :  Elevation (feet)",
		"#>  Region1    :  Region 1 (e.g., county)",
		"#>  Region2    :  Region 2 (e.g., HUC)",
		"#>  Name       :  Station name",
		"#>",
		"#>    ID      Lat     Elev      Region1        Region2  Name",
		"#>---------eb----eb-------eb------------------eb------exb----------------------e",
		"#>EndHeader",
	)
	for _, c := range stations {
		if c == nil {
			continue
		}
		p.Printf("%-12.12s%s%s%-20.20s%-8.8s %-24.24s",
			c.ID(),
			missingBlank(c.Latitude(), 6, 2),
			missingBlank(c.Elevation(), 9, 2),
			c.Region1(), c.Region2(), c.Name())
	}
	return p.Err()
}

// missingBlank formats v, or blanks when v is the missing value.
func missingBlank(v float64, width, precision int) string {
	if v == models.MissingDouble {
		return strings.Repeat(" ", width)
	}
	return fixedformat.FormatFloat(v, width, precision)
}
