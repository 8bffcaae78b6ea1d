package models

import "encoding/json"

// Plan is a StateMod plan: terms and conditions, augmentation, reuse and
// similar accounting structures.
type Plan struct {
	Data
	original *Plan
	psource  string
	peff     float64
	psto1    float64
	iplntyp  int
	iprf     int
	ipfail   int
}

// NewPlan creates a plan with defaults (type 1, efficiency 999) or with
// all values missing.
func NewPlan(defaults bool) *Plan {
	p := &Plan{Data: newData(CompPlans)}
	if defaults {
		p.iplntyp = 1
		p.peff = 999
		p.iprf = 999
		p.ipfail = 0
		p.psto1 = 0
		p.psource = ""
		return p
	}
	p.iplntyp = MissingInt
	p.peff = MissingDouble
	p.iprf = MissingInt
	p.ipfail = MissingInt
	p.psto1 = MissingDouble
	p.psource = MissingString
	return p
}

func (p *Plan) touch() { p.markDirty(CompPlans) }

// PlanType returns the plan type (1-9).
func (p *Plan) PlanType() int { return p.iplntyp }

// SetPlanType sets the plan type.
func (p *Plan) SetPlanType(v int) {
	if v != p.iplntyp {
		p.iplntyp = v
		p.touch()
	}
}

// Peff returns the plan efficiency.
func (p *Plan) Peff() float64 { return p.peff }

// SetPeff sets the plan efficiency.
func (p *Plan) SetPeff(v float64) {
	if v != p.peff {
		p.peff = v
		p.touch()
	}
}

// IPrf returns the return flow table reference.
func (p *Plan) IPrf() int { return p.iprf }

// SetIPrf sets the return flow table reference.
func (p *Plan) SetIPrf(v int) {
	if v != p.iprf {
		p.iprf = v
		p.touch()
	}
}

// IPfail returns the failure switch.
func (p *Plan) IPfail() int { return p.ipfail }

// SetIPfail sets the failure switch.
func (p *Plan) SetIPfail(v int) {
	if v != p.ipfail {
		p.ipfail = v
		p.touch()
	}
}

// Psto1 returns the initial storage.
func (p *Plan) Psto1() float64 { return p.psto1 }

// SetPsto1 sets the initial storage.
func (p *Plan) SetPsto1(v float64) {
	if v != p.psto1 {
		p.psto1 = v
		p.touch()
	}
}

// Psource returns the source structure id.
func (p *Plan) Psource() string { return p.psource }

// SetPsource sets the source structure id.
func (p *Plan) SetPsource(v string) {
	if v != p.psource {
		p.psource = v
		p.touch()
	}
}

var planTypeChoices = []choice{
	"1 - Terms and Conditions (T&C)",
	"2 - Well Augmentation",
	"3 - Reuse to a Reservoir",
	"4 - Reuse to a Diversion",
	"5 - Reuse to a Reservoir from Transmountain",
	"6 - Reuse to a Diversion from Transmountain",
	"7 - Transmountain import",
	"8 - Recharge Plan",
	"9 - Out of Priority Diversion or Storage",
}

// PlanTypeChoices returns the plan type options.
func PlanTypeChoices(includeNotes bool) []string {
	return choices(planTypeChoices, includeNotes)
}

// DefaultPlanType returns the plan type for new plans.
func DefaultPlanType(includeNotes bool) string {
	return planTypeChoices[0].text(includeNotes)
}

var planFailChoices = []choice{
	"0 - Do not turn plan off if it fails",
	"1 - Turn plan off if it fails",
}

// PlanFailChoices returns the failure switch options.
func PlanFailChoices(includeNotes bool) []string {
	return choices(planFailChoices, includeNotes)
}

// DefaultPlanFail returns the failure switch for new plans.
func DefaultPlanFail(includeNotes bool) string {
	return planFailChoices[0].text(includeNotes)
}

// CreateBackup snapshots the plan before an edit session.
func (p *Plan) CreateBackup() {
	s := *p
	s.Data = p.snapshotBase()
	s.original = nil
	p.original = &s
	p.editing = true
}

// RestoreOriginal reverts to the backup and ends the edit session.
func (p *Plan) RestoreOriginal() error {
	o := p.original
	if o == nil {
		return ErrNoBackup
	}
	p.restoreBase(&o.Data)
	p.iplntyp = o.iplntyp
	p.peff = o.peff
	p.iprf = o.iprf
	p.ipfail = o.ipfail
	p.psto1 = o.psto1
	p.psource = o.psource
	p.original = nil
	return nil
}

// AcceptChanges ends the edit session keeping the current values.
func (p *Plan) AcceptChanges() {
	if p.original == nil {
		return
	}
	changed := p.Changed()
	p.original = nil
	p.editing = false
	if changed {
		p.touch()
	}
}

// Changed reports whether the plan differs from its backup.
func (p *Plan) Changed() bool {
	if p.original == nil {
		return true
	}
	return p.Compare(p.original) != 0
}

// Compare orders plans by base fields then plan fields in file order.
func (p *Plan) Compare(other *Plan) int {
	if res := p.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareInt(p.iplntyp, other.iplntyp); res != 0 {
		return res
	}
	if res := compareFloat(p.peff, other.peff); res != 0 {
		return res
	}
	if res := compareInt(p.iprf, other.iprf); res != 0 {
		return res
	}
	if res := compareInt(p.ipfail, other.ipfail); res != 0 {
		return res
	}
	if res := compareFloat(p.psto1, other.psto1); res != 0 {
		return res
	}
	return compareString(p.psource, other.psource)
}

// Clone returns an unbound copy.
func (p *Plan) Clone() *Plan {
	c := *p
	c.dataset = nil
	c.editing = false
	c.original = nil
	return &c
}

type planJSON struct {
	dataJSON
	Source      string  `json:"source"`
	Efficiency  float64 `json:"efficiency"`
	Storage     float64 `json:"initial_storage"`
	Type        int     `json:"type"`
	ReturnTable int     `json:"return_table"`
	Fail        int     `json:"fail"`
}

// MarshalJSON implements json.Marshaler.
func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(planJSON{
		dataJSON:    p.toJSON(),
		Source:      p.psource,
		Efficiency:  p.peff,
		Storage:     p.psto1,
		Type:        p.iplntyp,
		ReturnTable: p.iprf,
		Fail:        p.ipfail,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Plan) UnmarshalJSON(b []byte) error {
	var j planJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*p = Plan{
		Data:    newData(CompPlans),
		psource: j.Source,
		peff:    j.Efficiency,
		psto1:   j.Storage,
		iplntyp: j.Type,
		iprf:    j.ReturnTable,
		ipfail:  j.Fail,
	}
	p.fromJSON(j.dataJSON)
	return nil
}
