package models

import (
	"strconv"
	"strings"
)

// Missing values used when a record is created without defaults.
const (
	MissingInt    = -999
	MissingDouble = -999.0
	MissingString = ""
)

// EditState describes where a record is in its edit lifecycle.
type EditState int

const (
	// StateClean is a record with no unsaved changes and no edit session.
	StateClean EditState = iota
	// StateDirty is a record changed since it was loaded or saved.
	StateDirty
	// StateEditing is a record inside an edit session with a snapshot held.
	StateEditing
)

func (s EditState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Data holds the fields shared by every StateMod/StateCU record.
// It is embedded by the concrete record types and is not used on its own.
type Data struct {
	dataset   *DataSet
	id        string
	name      string
	comment   string
	cgoto     string
	mapLabel  string
	utmX      float64
	utmY      float64
	component Component
	onOff     int
	newUTM    int
	dirty     bool
	// editing is true while a backup exists; setters do not notify the data set
	editing             bool
	mapLabelDisplayID   bool
	mapLabelDisplayName bool
}

func newData(comp Component) Data {
	return Data{
		component: comp,
		onOff:     1,
		utmX:      MissingDouble,
		utmY:      MissingDouble,
	}
}

// markDirty marks the record dirty and notifies the bound data set once per change.
func (d *Data) markDirty(comp Component) {
	d.dirty = true
	if !d.editing && d.dataset != nil {
		d.dataset.SetDirty(comp, true)
	}
}

// ID returns the record identifier.
func (d *Data) ID() string { return d.id }

// SetID sets the record identifier.
func (d *Data) SetID(id string) {
	if id != d.id {
		d.id = id
		d.markDirty(d.component)
	}
}

// Name returns the record name.
func (d *Data) Name() string { return d.name }

// SetName sets the record name.
func (d *Data) SetName(name string) {
	if name != d.name {
		d.name = name
		d.markDirty(d.component)
	}
}

// Cgoto returns the river network node the record is attached to.
func (d *Data) Cgoto() string { return d.cgoto }

// SetCgoto sets the river network node.
func (d *Data) SetCgoto(cgoto string) {
	if cgoto != d.cgoto {
		d.cgoto = cgoto
		d.markDirty(d.component)
	}
}

// Switch returns the on/off switch: 0 = off, 1 = on, other codes for some types.
func (d *Data) Switch() int { return d.onOff }

// SetSwitch sets the on/off switch.
func (d *Data) SetSwitch(sw int) {
	if sw != d.onOff {
		d.onOff = sw
		d.markDirty(d.component)
	}
}

// SetSwitchString sets the switch from text; unparsable text is ignored.
func (d *Data) SetSwitchString(s string) {
	if v, ok := parseInt(s); ok {
		d.SetSwitch(v)
	}
}

// Comment returns the free-text comment. It is not part of comparisons.
func (d *Data) Comment() string { return d.comment }

// SetComment sets the comment.
func (d *Data) SetComment(comment string) {
	if comment != d.comment {
		d.comment = comment
		d.markDirty(d.component)
	}
}

// UTM returns the x and y coordinates; -999 means unset.
func (d *Data) UTM() (float64, float64) { return d.utmX, d.utmY }

// SetUTM sets both coordinates. Location edits dirty the geo view component.
func (d *Data) SetUTM(x, y float64) {
	if x != d.utmX || y != d.utmY {
		d.utmX = x
		d.utmY = y
		d.markDirty(CompGeoView)
	}
}

// SetUTMString sets coordinates from text; unparsable pairs are ignored.
func (d *Data) SetUTMString(x, y string) {
	fx, okx := parseFloat(x)
	fy, oky := parseFloat(y)
	if okx && oky {
		d.SetUTM(fx, fy)
	}
}

// NewUTM returns 1 when the coordinates are new and the GIS file should be rewritten.
func (d *Data) NewUTM() int { return d.newUTM }

// SetNewUTM sets the new-coordinates flag.
func (d *Data) SetNewUTM(v int) { d.newUTM = v }

// MapLabel returns the label used when the record is shown on a map.
func (d *Data) MapLabel() string { return d.mapLabel }

// SetMapLabel sets the map label and which parts it displays.
func (d *Data) SetMapLabel(label string, displayID, displayName bool) {
	d.mapLabel = label
	d.mapLabelDisplayID = displayID
	d.mapLabelDisplayName = displayName
}

// Component returns the record type.
func (d *Data) Component() Component { return d.component }

// IsDirty reports whether the record itself has unsaved changes.
func (d *Data) IsDirty() bool { return d.dirty }

// SetDirty sets the record dirty flag without touching the data set.
func (d *Data) SetDirty(dirty bool) { d.dirty = dirty }

// DataSet returns the data set the record is bound to, or nil.
func (d *Data) DataSet() *DataSet { return d.dataset }

// SetDataSet binds the record to a data set.
func (d *Data) SetDataSet(ds *DataSet) { d.dataset = ds }

// EditState returns the lifecycle state of the record.
func (d *Data) EditState() EditState {
	switch {
	case d.editing:
		return StateEditing
	case d.dirty:
		return StateDirty
	default:
		return StateClean
	}
}

// IsEditing reports whether a backup is held for the record.
func (d *Data) IsEditing() bool { return d.editing }

// Equals compares base fields. The data set must be the same instance;
// the comment is not compared.
func (d *Data) Equals(other *Data) bool {
	if other == nil {
		return false
	}
	return other.dirty == d.dirty &&
		other.utmX == d.utmX &&
		other.utmY == d.utmY &&
		other.onOff == d.onOff &&
		other.id == d.id &&
		other.name == d.name &&
		other.cgoto == d.cgoto &&
		other.component == d.component &&
		other.mapLabel == d.mapLabel &&
		other.mapLabelDisplayID == d.mapLabelDisplayID &&
		other.mapLabelDisplayName == d.mapLabelDisplayName &&
		other.dataset == d.dataset
}

// compareBase orders by id, name, cgoto, switch, utm x, utm y.
func (d *Data) compareBase(other *Data) int {
	if res := compareString(d.id, other.id); res != 0 {
		return res
	}
	if res := compareString(d.name, other.name); res != 0 {
		return res
	}
	if res := compareString(d.cgoto, other.cgoto); res != 0 {
		return res
	}
	if res := compareInt(d.onOff, other.onOff); res != 0 {
		return res
	}
	if res := compareFloat(d.utmX, other.utmX); res != 0 {
		return res
	}
	return compareFloat(d.utmY, other.utmY)
}

// snapshotBase returns a copy of the base fields for a backup.
func (d *Data) snapshotBase() Data {
	s := *d
	s.editing = false
	return s
}

// restoreBase copies base fields back from a snapshot, keeping the binding.
func (d *Data) restoreBase(s *Data) {
	ds := d.dataset
	*d = *s
	d.dataset = ds
	d.editing = false
}

func compareString(a, b string) int {
	return strings.Compare(a, b)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareFloats(a, b []float64) int {
	if res := compareInt(len(a), len(b)); res != 0 {
		return res
	}
	for i := range a {
		if res := compareFloat(a[i], b[i]); res != 0 {
			return res
		}
	}
	return 0
}

func compareStrings(a, b []string) int {
	if res := compareInt(len(a), len(b)); res != 0 {
		return res
	}
	for i := range a {
		if res := compareString(a[i], b[i]); res != 0 {
			return res
		}
	}
	return 0
}

// parseInt parses trimmed text; blank or malformed text is reported as absent.
func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloat parses trimmed text; blank or malformed text is reported as absent.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
