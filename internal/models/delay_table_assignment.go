package models

import (
	"encoding/json"
	"slices"
)

// DelayTableAssignment assigns delay tables to a StateCU location as
// parallel (table id, percent) pairs.
type DelayTableAssignment struct {
	Data
	original *DelayTableAssignment
	tableIDs []string
	percents []float64
}

// NewDelayTableAssignment creates an assignment with no tables.
func NewDelayTableAssignment() *DelayTableAssignment {
	return &DelayTableAssignment{Data: newData(CompDelayTableAssignments)}
}

func (a *DelayTableAssignment) touch() { a.markDirty(CompDelayTableAssignments) }

// NumDelayTables returns the number of pairs.
func (a *DelayTableAssignment) NumDelayTables() int { return len(a.tableIDs) }

// SetNumDelayTables reallocates the pairs; previous values are discarded.
func (a *DelayTableAssignment) SetNumDelayTables(n int) {
	if n < 0 {
		n = 0
	}
	a.tableIDs = make([]string, n)
	a.percents = make([]float64, n)
	a.touch()
}

// DelayTableID returns the table id at pos or "" when pos is invalid.
func (a *DelayTableAssignment) DelayTableID(pos int) string {
	if pos < 0 || pos >= len(a.tableIDs) {
		return ""
	}
	return a.tableIDs[pos]
}

// SetDelayTableID sets the table id at pos; invalid positions are ignored.
func (a *DelayTableAssignment) SetDelayTableID(id string, pos int) {
	if pos < 0 || pos >= len(a.tableIDs) {
		return
	}
	if a.tableIDs[pos] != id {
		a.tableIDs[pos] = id
		a.touch()
	}
}

// DelayTablePercent returns the percent at pos or 0 when pos is invalid.
func (a *DelayTableAssignment) DelayTablePercent(pos int) float64 {
	if pos < 0 || pos >= len(a.percents) {
		return 0
	}
	return a.percents[pos]
}

// SetDelayTablePercent sets the percent at pos; invalid positions are ignored.
func (a *DelayTableAssignment) SetDelayTablePercent(percent float64, pos int) {
	if pos < 0 || pos >= len(a.percents) {
		return
	}
	if a.percents[pos] != percent {
		a.percents[pos] = percent
		a.touch()
	}
}

// TotalPercent returns the sum of the assigned percents.
func (a *DelayTableAssignment) TotalPercent() float64 {
	var sum float64
	for _, p := range a.percents {
		sum += p
	}
	return sum
}

// CreateBackup snapshots the assignment before an edit session.
func (a *DelayTableAssignment) CreateBackup() {
	s := *a
	s.Data = a.snapshotBase()
	s.tableIDs = slices.Clone(a.tableIDs)
	s.percents = slices.Clone(a.percents)
	s.original = nil
	a.original = &s
	a.editing = true
}

// RestoreOriginal reverts to the backup and ends the edit session.
func (a *DelayTableAssignment) RestoreOriginal() error {
	o := a.original
	if o == nil {
		return ErrNoBackup
	}
	a.restoreBase(&o.Data)
	a.tableIDs = o.tableIDs
	a.percents = o.percents
	a.original = nil
	return nil
}

// AcceptChanges ends the edit session keeping the current values.
func (a *DelayTableAssignment) AcceptChanges() {
	if a.original == nil {
		return
	}
	changed := a.Changed()
	a.original = nil
	a.editing = false
	if changed {
		a.touch()
	}
}

// Changed reports whether the assignment differs from its backup.
func (a *DelayTableAssignment) Changed() bool {
	if a.original == nil {
		return true
	}
	return a.Compare(a.original) != 0
}

// Compare orders assignments by base fields, table ids and percents.
func (a *DelayTableAssignment) Compare(other *DelayTableAssignment) int {
	if res := a.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareStrings(a.tableIDs, other.tableIDs); res != 0 {
		return res
	}
	return compareFloats(a.percents, other.percents)
}

// Clone returns a deep, unbound copy.
func (a *DelayTableAssignment) Clone() *DelayTableAssignment {
	c := *a
	c.dataset = nil
	c.editing = false
	c.original = nil
	c.tableIDs = slices.Clone(a.tableIDs)
	c.percents = slices.Clone(a.percents)
	return &c
}

type assignmentPairJSON struct {
	TableID string  `json:"table_id"`
	Percent float64 `json:"percent"`
}

type assignmentJSON struct {
	dataJSON
	Tables []assignmentPairJSON `json:"tables"`
}

// MarshalJSON implements json.Marshaler.
func (a *DelayTableAssignment) MarshalJSON() ([]byte, error) {
	j := assignmentJSON{dataJSON: a.toJSON(), Tables: make([]assignmentPairJSON, len(a.tableIDs))}
	for i := range a.tableIDs {
		j.Tables[i] = assignmentPairJSON{TableID: a.tableIDs[i], Percent: a.percents[i]}
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *DelayTableAssignment) UnmarshalJSON(b []byte) error {
	var j assignmentJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*a = DelayTableAssignment{
		Data:     newData(CompDelayTableAssignments),
		tableIDs: make([]string, len(j.Tables)),
		percents: make([]float64, len(j.Tables)),
	}
	for i, p := range j.Tables {
		a.tableIDs[i] = p.TableID
		a.percents[i] = p.Percent
	}
	a.fromJSON(j.dataJSON)
	return nil
}
