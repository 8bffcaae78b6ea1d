package models

import (
	"encoding/json"
	"slices"
)

// Delay table units.
const (
	UnitsPercent  = "PCT"
	UnitsFraction = "FRACTION"
)

// DelayTable is a return-flow pattern: the share of a diverted amount that
// returns to the river in each following month (or day).
// Name follows the table id.
type DelayTable struct {
	Data
	original *DelayTable
	units    string
	values   []float64
	monthly  bool
}

// NewDelayTable creates an empty table in percent units.
func NewDelayTable(monthly bool) *DelayTable {
	comp := CompDelayTablesDaily
	if monthly {
		comp = CompDelayTablesMonthly
	}
	return &DelayTable{
		Data:    newData(comp),
		units:   UnitsPercent,
		monthly: monthly,
	}
}

func (t *DelayTable) touch() { t.markDirty(t.component) }

// TableID returns the table id.
func (t *DelayTable) TableID() string { return t.id }

// SetTableID sets the table id and the name to the same value.
func (t *DelayTable) SetTableID(id string) {
	if id != t.id {
		t.id = id
		t.name = id
		t.touch()
	}
}

// IsMonthly reports whether the table holds monthly (true) or daily values.
func (t *DelayTable) IsMonthly() bool { return t.monthly }

// Units returns "PCT" or "FRACTION".
func (t *DelayTable) Units() string { return t.units }

// SetUnits sets the units.
func (t *DelayTable) SetUnits(units string) {
	if units != t.units {
		t.units = units
		t.touch()
	}
}

// Ndly returns the number of return values.
func (t *DelayTable) Ndly() int { return len(t.values) }

// Values returns the return values in order.
func (t *DelayTable) Values() []float64 { return t.values }

// Value returns the value at i, or MissingDouble when i is out of range.
func (t *DelayTable) Value(i int) float64 {
	if i < 0 || i >= len(t.values) {
		return MissingDouble
	}
	return t.values[i]
}

// AddValue appends a return value.
func (t *DelayTable) AddValue(v float64) {
	t.values = append(t.values, v)
	t.touch()
}

// InsertValue inserts a value at i; i equal to Ndly appends.
func (t *DelayTable) InsertValue(i int, v float64) error {
	if i < 0 || i > len(t.values) {
		return ErrIndexOutOfRange
	}
	t.values = slices.Insert(t.values, i, v)
	t.touch()
	return nil
}

// RemoveValue removes the value at i.
func (t *DelayTable) RemoveValue(i int) error {
	if i < 0 || i >= len(t.values) {
		return ErrIndexOutOfRange
	}
	t.values = slices.Delete(t.values, i, i+1)
	t.touch()
	return nil
}

// SetValue replaces the value at i. Positions past the end append instead.
func (t *DelayTable) SetValue(i int, v float64) {
	if i < 0 {
		return
	}
	if i >= len(t.values) {
		t.AddValue(v)
		return
	}
	if t.values[i] != v {
		t.values[i] = v
		t.touch()
	}
}

// SetValues replaces all values without marking the table dirty.
func (t *DelayTable) SetValues(values []float64) {
	t.values = slices.Clone(values)
}

// Scale multiplies every value, for example 0.01 to convert percent to fraction.
func (t *DelayTable) Scale(factor float64) {
	for i := range t.values {
		t.SetValue(i, t.values[i]*factor)
	}
}

// Sum returns the sum of the return values.
func (t *DelayTable) Sum() float64 {
	var sum float64
	for _, v := range t.values {
		sum += v
	}
	return sum
}

// CreateBackup snapshots the table before an edit session.
func (t *DelayTable) CreateBackup() {
	s := *t
	s.Data = t.snapshotBase()
	s.values = slices.Clone(t.values)
	s.original = nil
	t.original = &s
	t.editing = true
}

// RestoreOriginal reverts to the backup and ends the edit session.
func (t *DelayTable) RestoreOriginal() error {
	o := t.original
	if o == nil {
		return ErrNoBackup
	}
	t.restoreBase(&o.Data)
	t.units = o.units
	t.values = o.values
	t.monthly = o.monthly
	t.original = nil
	return nil
}

// AcceptChanges ends the edit session keeping the current values.
func (t *DelayTable) AcceptChanges() {
	if t.original == nil {
		return
	}
	changed := t.Changed()
	t.original = nil
	t.editing = false
	if changed {
		t.touch()
	}
}

// Changed reports whether the table differs from its backup.
func (t *DelayTable) Changed() bool {
	if t.original == nil {
		return true
	}
	return t.Compare(t.original) != 0
}

// Compare orders tables by base fields, count, units, kind and values.
func (t *DelayTable) Compare(other *DelayTable) int {
	if res := t.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareInt(len(t.values), len(other.values)); res != 0 {
		return res
	}
	if res := compareString(t.units, other.units); res != 0 {
		return res
	}
	if res := compareBool(t.monthly, other.monthly); res != 0 {
		return res
	}
	return compareFloats(t.values, other.values)
}

// Clone returns a deep, unbound copy.
func (t *DelayTable) Clone() *DelayTable {
	c := *t
	c.dataset = nil
	c.editing = false
	c.original = nil
	c.values = slices.Clone(t.values)
	return &c
}

type delayTableJSON struct {
	dataJSON
	Units   string    `json:"units"`
	Values  []float64 `json:"values"`
	Monthly bool      `json:"monthly"`
}

// MarshalJSON implements json.Marshaler.
func (t *DelayTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(delayTableJSON{
		dataJSON: t.toJSON(),
		Units:    t.units,
		Values:   t.values,
		Monthly:  t.monthly,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *DelayTable) UnmarshalJSON(b []byte) error {
	var j delayTableJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*t = *NewDelayTable(j.Monthly)
	t.units = j.Units
	t.values = j.Values
	t.fromJSON(j.dataJSON)
	return nil
}
