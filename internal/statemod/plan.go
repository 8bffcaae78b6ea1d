package statemod

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
)

const planTokens = 10

// ReadPlans reads a plan (.pln) file. Lines with fewer than ten values are
// skipped with a log message.
func ReadPlans(path string, opts Options) ([]*models.Plan, error) {
	opts = opts.WithDefaults()
	opts.Logger.Info("reading plan file", slog.String("path", path))
	var plans []*models.Plan
	err := fixedformat.ReadFile(path, opts.Options, func(r io.Reader) error {
		var err error
		plans, err = parsePlans(r, path, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ParsePlans reads plan records from r.
func ParsePlans(r io.Reader, opts Options) ([]*models.Plan, error) {
	return parsePlans(r, "", opts.WithDefaults())
}

func parsePlans(r io.Reader, path string, opts Options) ([]*models.Plan, error) {
	lr := fixedformat.NewLineReader(r, path, opts.Options)
	plans := []*models.Plan{}
	for {
		line, ok := lr.Next()
		if !ok {
			break
		}
		v := fixedformat.Tokenize(line)
		if len(v) < planTokens {
			opts.Logger.Info("ignoring plan line, not enough data values",
				slog.Int("line", lr.Line()),
				slog.Int("have", len(v)),
				slog.Int("expecting", planTokens))
			continue
		}
		p := models.NewPlan(true)
		p.SetID(v[0])
		p.SetName(v[1])
		p.SetCgoto(v[2])
		p.SetSwitchString(v[3])
		if n, err := strconv.Atoi(v[4]); err == nil {
			p.SetPlanType(n)
		}
		if f, err := strconv.ParseFloat(v[5], 64); err == nil {
			p.SetPeff(f)
		}
		if n, err := strconv.Atoi(v[6]); err == nil {
			p.SetIPrf(n)
		}
		if n, err := strconv.Atoi(v[7]); err == nil {
			p.SetIPfail(n)
		}
		if f, err := strconv.ParseFloat(v[8], 64); err == nil {
			p.SetPsto1(f)
		}
		p.SetPsource(v[9])
		p.SetDirty(false)
		p.SetDataSet(opts.DataSet)
		plans = append(plans, p)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// WritePlans writes a plan file.
func WritePlans(path string, plans []*models.Plan, opts Options) error {
	opts = opts.WithDefaults()
	hdr, err := fixedformat.NewHeader(opts.Header)
	if err != nil {
		return err
	}
	err = fixedformat.WriteFile(path, opts.Options, func(w io.Writer) error {
		if err := hdr.Write(w); err != nil {
			return err
		}
		return encodePlans(w, plans)
	})
	if err != nil {
		return fmt.Errorf("failed to write plans: %w", err)
	}
	return nil
}

// EncodePlans writes a complete plan file to w.
func EncodePlans(w io.Writer, plans []*models.Plan, opts Options) error {
	opts = opts.WithDefaults()
	if err := fixedformat.WriteHeader(w, opts.Header); err != nil {
		return err
	}
	return encodePlans(w, plans)
}

func encodePlans(w io.Writer, plans []*models.Plan) error {
	p := fixedformat.NewPrinter(w)
	p.Println(planHeader...)
	for _, pl := range plans {
		if pl == nil {
			continue
		}
		// Текстовые поля с пробелами берутся в кавычки, иначе строка не разберётся
		p.Printf("%s %s %s %8d %8d%s %8d %8d %s %s",
			fixedformat.TokenString(pl.ID(), 12),
			fixedformat.TokenString(pl.Name(), 24),
			fixedformat.TokenString(pl.Cgoto(), 12),
			pl.Switch(), pl.PlanType(),
			fixedformat.FormatFloatSign(pl.Peff(), 8, 2),
			pl.IPrf(), pl.IPfail(),
			fixedformat.FormatFloat(pl.Psto1(), 8, 2),
			fixedformat.TokenString(pl.Psource(), 12))
	}
	return p.Err()
}

var planHeader = []string{
	"#>",
	"#>*************************************************",
	"#>  Plan (Augmentation and Terms and Conditions Data)",
	"#>",
	"#>  Card 1 format (a12, a24, 1x, 3i8, 6(1x,a12)",
	"#>",
	"#>  Plan ID           Pid:  Plan ID",
	"#>  Plan Name       PName:  Plan name",
	"#>  Plan Location   iPsta:  River node for plan",
	"#>  Plan On/Off       Pon:  Switch 0=off, 1=on",
	"#>  Plan Type     iPlnTyp:  Plan type",
	"#>                          1=Terms and Conditions (T&C)",
	"#>                          2=Well Augmentation",
	"#>                          3=CU Reuse to a Reservoir",
	"#>                          4=CU Reuse to a Diversion",
	"#>                          5=CU Reuse to a Reservoir from Tmtn",
	"#>                          6=CU Reuse to a Diversion from Tmtn",
	"#>                          7=Tmtn Reuse",
	"#>                          8=Recharge Plan",
	"#>                          9=OOP Plan",
	"#>  Plan Eff.        Peff:  Plan efficiency (%)",
	"#>  Plan Rtn. Flow ID iPrf: Return flow table.",
	"#>                          999 to use source structure's",
	"#>  Plan Failure Switch iPfail:  Failure switch",
	"#>                          0=Do not stop for failure",
	"#>                          1=Stop for failure",
	"#>  Plan Init. Sto. Psto1:  Initial storage (AF)",
	"#>  Plan source   PSource:  A reference (comment) typically used to describe",
	"#>                          the source this plan is associated with.",
	"#>                          Note this is currently used only in reporting.",
	"#> ID               Name                 RivLoc     On/Off  iPlnTyp    Peff    iPrf     iPfail  Psto1       Psource",
	"#>---------exb----------------------exb----------exb------exb------exb------exb------exe------exb------exb----------e",
	"#>EndHeader",
}
