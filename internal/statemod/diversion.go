package statemod

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

var (
	diversionCard1 = []fixedformat.Field{
		fixedformat.S(12), fixedformat.S(24), fixedformat.S(12), fixedformat.I(8),
		fixedformat.F(8), fixedformat.I(8), fixedformat.I(8), fixedformat.X(1), fixedformat.S(12),
	}
	diversionCard2 = []fixedformat.Field{
		fixedformat.S(12), fixedformat.S(24), fixedformat.S(12), fixedformat.I(8),
		fixedformat.I(8), fixedformat.F(8), fixedformat.F(8), fixedformat.I(8), fixedformat.I(8),
	}
	returnFlowCard = []fixedformat.Field{
		fixedformat.S(36), fixedformat.S(12), fixedformat.F(8), fixedformat.I(8),
	}
)

// ReadDiversions reads a diversion station (.dds) file.
func ReadDiversions(path string, opts Options) ([]*models.Diversion, error) {
	opts = opts.WithDefaults()
	opts.Logger.Info("reading diversion file", slog.String("path", path))
	var divs []*models.Diversion
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		divs, err = parseDiversions(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return divs, nil
}

// ParseDiversions reads diversion records from r.
func ParseDiversions(r io.Reader, opts Options) ([]*models.Diversion, error) {
	return parseDiversions(r, "", opts.WithDefaults())
}

func parseDiversions(r io.Reader, path string, opts Options) ([]*models.Diversion, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options)
	divs := []*models.Diversion{}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		d, err := parseDiversion(lr, line, opts.Logger)
		if err != nil {
			return nil, err
		}
		d.SetDirty(false)
		d.SetDataSet(opts.DataSet)
		divs = append(divs, d)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	return divs, nil
}

// parseDiversion reads cards 2 to 4 of a record as physical lines.
func parseDiversion(lr *fixedformat.LineReader, line string, logger *slog.Logger) (*models.Diversion, error) {
	d := models.NewDiversion(true)

	v := fixedformat.FixedRead(line, diversionCard1)
	d.SetID(v[0].Trimmed())
	d.SetName(v[1].Trimmed())
	d.SetCgoto(v[2].Trimmed())
	if v[3].OK {
		d.SetSwitch(v[3].Int)
	}
	if v[4].OK {
		d.SetDivcap(v[4].Float)
	}
	if v[6].OK {
		d.SetIreptype(v[6].Int)
	}
	d.SetCdividy(v[8].Trimmed())

	line, ok := lr.Raw()
	if !ok {
		return nil, lr.EOF("card 2 of diversion " + d.ID())
	}
	v = fixedformat.FixedRead(line, diversionCard2)
	d.SetUsername(v[1].Trimmed())
	if v[3].OK {
		d.SetIdvcom(v[3].Int)
	}
	nrtn := 0
	if v[4].OK {
		nrtn = v[4].Int
	}
	if v[5].OK {
		d.SetDivefc(v[5].Float)
	}
	if v[6].OK {
		d.SetArea(v[6].Float)
	}
	if v[7].OK {
		d.SetIrturn(v[7].Int)
	}
	if v[8].OK {
		d.SetDemsrc(v[8].Int)
	}

	if d.Divefc() < 0 {
		// Отрицательная годовая эффективность: следует строка помесячных значений
		line, ok = lr.Raw()
		if !ok {
			return nil, lr.EOF("monthly efficiencies of diversion " + d.ID())
		}
		if tokens := strings.Fields(line); len(tokens) == 12 {
			for i, tok := range tokens {
				d.SetDiveffString(i, tok)
			}
		}
	} else {
		for i := range 12 {
			d.SetDiveff(i, d.Divefc())
		}
	}

	for i := range nrtn {
		line, ok = lr.Raw()
		if !ok {
			return nil, lr.EOF(fmt.Sprintf("return flow %d of diversion %s", i+1, d.ID()))
		}
		v = fixedformat.FixedRead(line, returnFlowCard)
		rf := models.NewReturnFlow(models.CompDiversionStations)
		rf.SetID(d.ID())
		if id := v[1].Trimmed(); id != "" {
			rf.SetCrtnid(id)
		} else {
			rf.SetCrtnid(v[0].Trimmed())
			logger.Warn("return node for structure is blank",
				slog.String("id", d.ID()),
				slog.Int("line", lr.Line()))
		}
		if v[2].OK {
			rf.SetPcttot(v[2].Float)
		}
		if v[3].OK {
			rf.SetIrtndl(v[3].Int)
		}
		rf.SetDirty(false)
		d.AddReturnFlow(rf)
	}
	return d, nil
}

// WriteDiversions writes a diversion station file. The header of
// opts.Header.PreviousFile is carried, so the output may replace it.
func WriteDiversions(path string, divs []*models.Diversion, opts Options) error {
	opts = opts.WithDefaults()
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodeDiversions(w, divs, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to write diversions: %w", err)
	}
	return nil
}

// EncodeDiversions writes a complete diversion file to w.
func EncodeDiversions(w io.Writer, divs []*models.Diversion, opts Options) error {
	opts = opts.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodeDiversions(w, divs, opts)
}

func encodeDiversions(w io.Writer, divs []*models.Diversion, opts Options) error {
	p := fixedformat.NewPrinter(w)
	p.Println(diversionHeader...)
	for _, d := range divs {
		if d == nil {
			continue
		}
		card1 := fmt.Sprintf("%-12.12s%-24.24s%-12.12s%8d%s%8d%8d",
			d.ID(), d.Name(), d.Cgoto(), d.Switch(),
			fixedformat.FormatFloatPoint(d.Divcap(), 8, 2), 1, d.Ireptype())
		if opts.UseDailyID {
			card1 += fmt.Sprintf(" %-12.12s", d.Cdividy())
		}
		p.Println(card1)
		p.Printf("            %-24.24s            %8d%8d%s%s%8d%8d",
			d.Username(), d.Idvcom(), d.Nrtn(),
			fixedformat.FormatFloatPoint(d.Divefc(), 8, 2),
			fixedformat.FormatFloatPoint(d.Area(), 8, 0),
			d.Irturn(), d.Demsrc())
		if d.Divefc() < 0 {
			var sb strings.Builder
			for i := range 12 {
				sb.WriteString(" " + fixedformat.FormatFloatPoint(d.Diveff(i), 5, 0))
			}
			p.Println(sb.String())
		}
		for _, rf := range d.ReturnFlows() {
			p.Printf("%36s%-12.12s%s%8d", "", rf.Crtnid(),
				fixedformat.FormatFloat(rf.Pcttot(), 8, 2), rf.Irtndl())
		}
	}
	return p.Err()
}

var diversionHeader = []string{
	"#>",
	"#>*************************************************",
	"#>  Direct Diversion Station File",
	"#>",
	"#>  Card 1 format (a12, a24, a12, i8, f8.2, 2i8, 1x, a12)",
	"#>",
	"#>  ID          cdivid:  Diversion station ID",
	"#>  Name        divnam:  Diversion name",
	"#>  Riv ID       cgoto:  River node for diversion",
	"#>  On/Off      idivsw:  Switch 0=off, 1=on",
	"#>  Capacity    divcap:  Diversion capacity (CFS)",
	"#>                dumx:  Not currently used",
	"#>  RepType    ireptyp:  Replacement reservoir option (see StateMod doc)",
	"#>  Daily ID   cdividy:  Daily diversion ID",
	"#>",
	"#>  Card 2 format (12x, a24, 12x, 2i8, f8.2, f8.0, 2i8)",
	"#>",
	"#>  User Name  usernam:  User name.",
	"#>  DemType     idvcom:  Demand data type switch (see StateMod doc)",
	"#>  #-Ret         nrtn:  Number of return flow table ref",
	"#>  Eff         divefc:  Annual system efficiency",
	"#>  Area          area:  Irrigated acreage",
	"#>  UseType     irturn:  Use type (see StateMod doc)",
	"#>  Demsrc      demsrc:  Demand source (see StateMod doc)",
	"#>",
	"#>  Card 3 format (free format)",
	"#>",
	"#>     diveff (12):  System efficiency % by month",
	"#>",
	"#>  Card 4 format (36x, a12, f8.2, i8)",
	"#>",
	"#>  Ret ID      crtnid:  River node receiving return flow",
	"#>  Ret %       pcttot:  Percent of return flow to this river node",
	"#>  Table #     irtndl:  Delay (return flow) table for this return flow.",
	"#>",
	"#> ID               Name             Riv ID     On/Off  Capacity        RepType   Daily ID",
	"#>---------eb----------------------eb----------eb------eb------eb------eb------exb----------e",
	"#>              User Name                       DemType   #-Ret   Eff %   Area  UseType DemSrc",
	"#>xxxxxxxxxxb----------------------exxxxxxxxxxxxb------eb------eb------eb------eb------eb------e",
	"#>          ... Monthly Efficiencies...",
	"#>b----------------------------------------------------------------------------e",
	"#>                                   Ret ID       Ret % Table #",
	"#>xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxb----------eb------eb------e",
	"#>EndHeader",
}
