package models

import (
	"encoding/json"
	"strconv"
)

// ReturnFlow is one return-flow entry of a structure: the river node it
// returns to, the percent returned there and the delay table that shapes it.
// The ID of a return flow is the ID of its owning structure.
type ReturnFlow struct {
	Data
	crtnid string
	pcttot float64
	irtndl int
}

// NewReturnFlow creates a return flow owned by a record of the given component.
func NewReturnFlow(owner Component) *ReturnFlow {
	return &ReturnFlow{
		Data:   newData(owner),
		pcttot: 100,
		irtndl: 1,
	}
}

// Crtnid returns the river node receiving the return flow.
func (r *ReturnFlow) Crtnid() string { return r.crtnid }

// SetCrtnid sets the receiving river node.
func (r *ReturnFlow) SetCrtnid(id string) {
	if id != r.crtnid {
		r.crtnid = id
		r.markDirty(r.component)
	}
}

// Pcttot returns the percent of the return flow going to the node.
func (r *ReturnFlow) Pcttot() float64 { return r.pcttot }

// SetPcttot sets the return percent.
func (r *ReturnFlow) SetPcttot(v float64) {
	if v != r.pcttot {
		r.pcttot = v
		r.markDirty(r.component)
	}
}

// Irtndl returns the delay table number.
func (r *ReturnFlow) Irtndl() int { return r.irtndl }

// SetIrtndl sets the delay table number.
func (r *ReturnFlow) SetIrtndl(v int) {
	if v != r.irtndl {
		r.irtndl = v
		r.markDirty(r.component)
	}
}

// DelayTableID returns the delay table reference in the form used by table ids.
func (r *ReturnFlow) DelayTableID() string {
	return strconv.Itoa(r.irtndl)
}

// Compare orders return flows by base fields, node, percent and table.
func (r *ReturnFlow) Compare(other *ReturnFlow) int {
	if res := r.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareString(r.crtnid, other.crtnid); res != 0 {
		return res
	}
	if res := compareFloat(r.pcttot, other.pcttot); res != 0 {
		return res
	}
	return compareInt(r.irtndl, other.irtndl)
}

// Clone returns an unbound copy.
func (r *ReturnFlow) Clone() *ReturnFlow {
	c := *r
	c.dataset = nil
	c.editing = false
	return &c
}

type returnFlowJSON struct {
	dataJSON
	RiverNode  string  `json:"river_node"`
	Percent    float64 `json:"percent"`
	DelayTable int     `json:"delay_table"`
	Owner      int     `json:"owner"`
}

// MarshalJSON implements json.Marshaler.
func (r *ReturnFlow) MarshalJSON() ([]byte, error) {
	return json.Marshal(returnFlowJSON{
		dataJSON:   r.toJSON(),
		RiverNode:  r.crtnid,
		Percent:    r.pcttot,
		DelayTable: r.irtndl,
		Owner:      int(r.component),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ReturnFlow) UnmarshalJSON(b []byte) error {
	var j returnFlowJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*r = ReturnFlow{
		Data:   newData(Component(j.Owner)),
		crtnid: j.RiverNode,
		pcttot: j.Percent,
		irtndl: j.DelayTable,
	}
	r.fromJSON(j.dataJSON)
	return nil
}
