package models

import (
	"encoding/json"
	"slices"
	"strings"
)

// Diversion is a direct diversion station.
// Monthly efficiencies are stored in the year order of the data set.
type Diversion struct {
	Data
	original    *Diversion
	collection  *Collection
	cdividy     string
	username    string
	returnFlows []*ReturnFlow
	rights      []*DiversionRight
	diveff      [12]float64
	divcap      float64
	divefc      float64
	area        float64
	awc         float64
	idvcom      int
	irturn      int
	demsrc      int
	ireptype    int
}

// NewDiversion creates a diversion. With defaults the record is ready for
// editing (60% efficiency, switch on); otherwise all values are missing.
func NewDiversion(defaults bool) *Diversion {
	d := &Diversion{Data: newData(CompDiversionStations)}
	if defaults {
		d.divefc = -60
		for i := range d.diveff {
			d.diveff[i] = 60
		}
		d.cdividy = "0"
		d.idvcom = 1
		d.irturn = 1
		d.demsrc = DemandSourceUnknown
		d.ireptype = -1
		return d
	}
	d.divefc = MissingDouble
	for i := range d.diveff {
		d.diveff[i] = MissingDouble
	}
	d.cdividy = MissingString
	d.username = MissingString
	d.divcap = MissingInt
	d.idvcom = MissingInt
	d.area = MissingDouble
	d.irturn = MissingInt
	d.demsrc = MissingInt
	d.ireptype = MissingInt
	return d
}

func (d *Diversion) touch() { d.markDirty(CompDiversionStations) }

// Cdividy returns the daily id.
func (d *Diversion) Cdividy() string { return d.cdividy }

// SetCdividy sets the daily id.
func (d *Diversion) SetCdividy(v string) {
	if v != d.cdividy {
		d.cdividy = v
		d.touch()
	}
}

// Divcap returns the diversion capacity (CFS).
func (d *Diversion) Divcap() float64 { return d.divcap }

// SetDivcap sets the diversion capacity.
func (d *Diversion) SetDivcap(v float64) {
	if v != d.divcap {
		d.divcap = v
		d.touch()
	}
}

// Username returns the user name.
func (d *Diversion) Username() string { return d.username }

// SetUsername sets the user name.
func (d *Diversion) SetUsername(v string) {
	if v != d.username {
		d.username = v
		d.touch()
	}
}

// Idvcom returns the demand type.
func (d *Diversion) Idvcom() int { return d.idvcom }

// SetIdvcom sets the demand type.
func (d *Diversion) SetIdvcom(v int) {
	if v != d.idvcom {
		d.idvcom = v
		d.touch()
	}
}

// Divefc returns the annual system efficiency. A negative value means
// monthly efficiencies are given.
func (d *Diversion) Divefc() float64 { return d.divefc }

// SetDivefc sets the annual system efficiency.
func (d *Diversion) SetDivefc(v float64) {
	if v != d.divefc {
		d.divefc = v
		d.touch()
	}
}

// Diveff returns the efficiency at a position in data set year order.
// Positions outside 0-11 return MissingDouble.
func (d *Diversion) Diveff(i int) float64 {
	if i < 0 || i >= len(d.diveff) {
		return MissingDouble
	}
	return d.diveff[i]
}

// SetDiveff sets the efficiency at a position in data set year order.
func (d *Diversion) SetDiveff(i int, v float64) {
	if i < 0 || i >= len(d.diveff) {
		return
	}
	if v != d.diveff[i] {
		d.diveff[i] = v
		d.touch()
	}
}

// SetDiveffString sets an efficiency from text; unparsable text is ignored.
func (d *Diversion) SetDiveffString(i int, s string) {
	if v, ok := parseFloat(s); ok {
		d.SetDiveff(i, v)
	}
}

// DiveffCalendar returns the efficiency for a calendar month index (0 = January).
func (d *Diversion) DiveffCalendar(calendarIndex int, yt YearType) float64 {
	if calendarIndex < 0 || calendarIndex >= 12 {
		return MissingDouble
	}
	return d.Diveff(yt.dataIndex(calendarIndex))
}

// SetDiveffCalendar sets the efficiency for a calendar month index (0 = January).
func (d *Diversion) SetDiveffCalendar(calendarIndex int, v float64, yt YearType) {
	if calendarIndex < 0 || calendarIndex >= 12 {
		return
	}
	d.SetDiveff(yt.dataIndex(calendarIndex), v)
}

// Area returns the irrigated acreage.
func (d *Diversion) Area() float64 { return d.area }

// SetArea sets the irrigated acreage.
func (d *Diversion) SetArea(v float64) {
	if v != d.area {
		d.area = v
		d.touch()
	}
}

// Irturn returns the use type.
func (d *Diversion) Irturn() int { return d.irturn }

// SetIrturn sets the use type.
func (d *Diversion) SetIrturn(v int) {
	if v != d.irturn {
		d.irturn = v
		d.touch()
	}
}

// Demsrc returns the demand source.
func (d *Diversion) Demsrc() int { return d.demsrc }

// SetDemsrc sets the demand source.
func (d *Diversion) SetDemsrc(v int) {
	if v != d.demsrc {
		d.demsrc = v
		d.touch()
	}
}

// Ireptype returns the reservoir replacement type.
func (d *Diversion) Ireptype() int { return d.ireptype }

// SetIreptype sets the reservoir replacement type.
func (d *Diversion) SetIreptype(v int) {
	if v != d.ireptype {
		d.ireptype = v
		d.touch()
	}
}

// AWC returns the available water content.
func (d *Diversion) AWC() float64 { return d.awc }

// SetAWC sets the available water content.
func (d *Diversion) SetAWC(v float64) {
	if v != d.awc {
		d.awc = v
		d.touch()
	}
}

// ReturnFlows returns the owned return flows.
func (d *Diversion) ReturnFlows() []*ReturnFlow { return d.returnFlows }

// ReturnFlow returns the return flow at i or nil.
func (d *Diversion) ReturnFlow(i int) *ReturnFlow {
	if i < 0 || i >= len(d.returnFlows) {
		return nil
	}
	return d.returnFlows[i]
}

// Nrtn returns the number of return flows.
func (d *Diversion) Nrtn() int { return len(d.returnFlows) }

// AddReturnFlow appends a return flow; nil is ignored.
func (d *Diversion) AddReturnFlow(rf *ReturnFlow) {
	if rf == nil {
		return
	}
	rf.SetDataSet(d.dataset)
	d.returnFlows = append(d.returnFlows, rf)
	d.touch()
}

// DeleteReturnFlowAt removes the return flow at i.
func (d *Diversion) DeleteReturnFlowAt(i int) error {
	if i < 0 || i >= len(d.returnFlows) {
		return ErrIndexOutOfRange
	}
	d.returnFlows = slices.Delete(d.returnFlows, i, i+1)
	d.touch()
	return nil
}

// SetReturnFlows replaces the return flow list without marking the record dirty.
func (d *Diversion) SetReturnFlows(rfs []*ReturnFlow) { d.returnFlows = rfs }

// Rights returns the rights connected to the diversion.
func (d *Diversion) Rights() []*DiversionRight { return d.rights }

// LastRight returns the most recently connected right or nil.
func (d *Diversion) LastRight() *DiversionRight {
	if len(d.rights) == 0 {
		return nil
	}
	return d.rights[len(d.rights)-1]
}

// AddRight connects a right. Rights are not stored in the station file
// so the diversion is not marked dirty.
func (d *Diversion) AddRight(r *DiversionRight) {
	if r != nil {
		d.rights = append(d.rights, r)
	}
}

// ConnectRights adds every right whose cgoto matches the diversion id, ignoring case.
func (d *Diversion) ConnectRights(rights []*DiversionRight) {
	for _, r := range rights {
		if r != nil && strings.EqualFold(d.id, r.Cgoto()) {
			d.rights = append(d.rights, r)
		}
	}
}

// DisconnectRight removes every connected right with the same id, ignoring case.
func (d *Diversion) DisconnectRight(r *DiversionRight) {
	if r == nil {
		return
	}
	d.rights = slices.DeleteFunc(d.rights, func(x *DiversionRight) bool {
		return strings.EqualFold(x.ID(), r.ID())
	})
}

// DisconnectRights removes all connected rights.
func (d *Diversion) DisconnectRights() { d.rights = nil }

// IsCollection reports whether the diversion is an aggregate or system.
func (d *Diversion) IsCollection() bool { return d.collection != nil }

// Collection returns the collection definition or nil.
func (d *Diversion) Collection() *Collection { return d.collection }

// SetCollection sets or clears the collection definition.
func (d *Diversion) SetCollection(c *Collection) { d.collection = c }

// CreateBackup snapshots the scalar fields before an edit session.
// Return flows and rights are shared with the snapshot.
func (d *Diversion) CreateBackup() {
	s := *d
	s.Data = d.snapshotBase()
	s.original = nil
	d.original = &s
	d.editing = true
}

// RestoreOriginal reverts every field saved by CreateBackup and ends the session.
func (d *Diversion) RestoreOriginal() error {
	o := d.original
	if o == nil {
		return ErrNoBackup
	}
	d.restoreBase(&o.Data)
	d.cdividy = o.cdividy
	d.divcap = o.divcap
	d.username = o.username
	d.idvcom = o.idvcom
	d.divefc = o.divefc
	d.diveff = o.diveff
	d.area = o.area
	d.irturn = o.irturn
	d.demsrc = o.demsrc
	d.ireptype = o.ireptype
	d.awc = o.awc
	d.original = nil
	return nil
}

// AcceptChanges ends the edit session keeping the current values.
func (d *Diversion) AcceptChanges() {
	if d.original == nil {
		return
	}
	changed := d.Changed()
	d.original = nil
	d.editing = false
	if changed {
		d.touch()
	}
}

// Changed reports whether the record differs from its backup.
// Without a backup it always reports true.
func (d *Diversion) Changed() bool {
	if d.original == nil {
		return true
	}
	return d.Compare(d.original) != 0
}

// Compare orders diversions by base fields then station fields.
// An empty daily id compares equal to "0".
func (d *Diversion) Compare(other *Diversion) int {
	if res := d.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareString(dailyIDKey(d.cdividy), dailyIDKey(other.cdividy)); res != 0 {
		return res
	}
	if res := compareFloat(d.divcap, other.divcap); res != 0 {
		return res
	}
	if res := compareString(d.username, other.username); res != 0 {
		return res
	}
	if res := compareInt(d.idvcom, other.idvcom); res != 0 {
		return res
	}
	if res := compareFloat(d.divefc, other.divefc); res != 0 {
		return res
	}
	if res := compareFloat(d.area, other.area); res != 0 {
		return res
	}
	if res := compareInt(d.irturn, other.irturn); res != 0 {
		return res
	}
	if res := compareInt(d.demsrc, other.demsrc); res != 0 {
		return res
	}
	if res := compareInt(d.ireptype, other.ireptype); res != 0 {
		return res
	}
	if res := compareFloat(d.awc, other.awc); res != 0 {
		return res
	}
	return compareFloats(d.diveff[:], other.diveff[:])
}

func dailyIDKey(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Clone returns a deep copy that is not bound to a data set or edit session.
func (d *Diversion) Clone() *Diversion {
	c := *d
	c.dataset = nil
	c.editing = false
	c.original = nil
	c.collection = d.collection.Clone()
	c.returnFlows = make([]*ReturnFlow, len(d.returnFlows))
	for i, rf := range d.returnFlows {
		c.returnFlows[i] = rf.Clone()
	}
	c.rights = make([]*DiversionRight, len(d.rights))
	for i, r := range d.rights {
		c.rights[i] = r.Clone()
	}
	return &c
}

// SetDataSet binds the diversion and its return flows to ds.
func (d *Diversion) SetDataSet(ds *DataSet) {
	d.dataset = ds
	for _, rf := range d.returnFlows {
		rf.SetDataSet(ds)
	}
}

type diversionJSON struct {
	dataJSON
	Collection  *Collection   `json:"collection,omitempty"`
	DailyID     string        `json:"daily_id"`
	Username    string        `json:"username"`
	ReturnFlows []*ReturnFlow `json:"return_flows"`
	Efficiency  [12]float64   `json:"efficiency_monthly"`
	Capacity    float64       `json:"capacity"`
	EffAnnual   float64       `json:"efficiency_annual"`
	Area        float64       `json:"area"`
	AWC         float64       `json:"awc"`
	DemandType  int           `json:"demand_type"`
	UseType     int           `json:"use_type"`
	DemandSrc   int           `json:"demand_source"`
	ReplaceType int           `json:"replacement_type"`
}

// MarshalJSON implements json.Marshaler. Rights are stored separately.
func (d *Diversion) MarshalJSON() ([]byte, error) {
	return json.Marshal(diversionJSON{
		dataJSON:    d.toJSON(),
		Collection:  d.collection,
		DailyID:     d.cdividy,
		Username:    d.username,
		ReturnFlows: d.returnFlows,
		Efficiency:  d.diveff,
		Capacity:    d.divcap,
		EffAnnual:   d.divefc,
		Area:        d.area,
		AWC:         d.awc,
		DemandType:  d.idvcom,
		UseType:     d.irturn,
		DemandSrc:   d.demsrc,
		ReplaceType: d.ireptype,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Diversion) UnmarshalJSON(b []byte) error {
	var j diversionJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*d = Diversion{
		Data:        newData(CompDiversionStations),
		collection:  j.Collection,
		cdividy:     j.DailyID,
		username:    j.Username,
		returnFlows: j.ReturnFlows,
		diveff:      j.Efficiency,
		divcap:      j.Capacity,
		divefc:      j.EffAnnual,
		area:        j.Area,
		awc:         j.AWC,
		idvcom:      j.DemandType,
		irturn:      j.UseType,
		demsrc:      j.DemandSrc,
		ireptype:    j.ReplaceType,
	}
	d.fromJSON(j.dataJSON)
	return nil
}
