package models

import "encoding/json"

// DiversionRight is a water right. Cgoto holds the ID of the structure
// the right belongs to; see Diversion.ConnectRights.
type DiversionRight struct {
	Data
	// irtem administration number, kept as text to preserve its digits
	irtem  string
	dcrdiv float64
}

// NewDiversionRight creates a right with default values.
func NewDiversionRight() *DiversionRight {
	return &DiversionRight{
		Data:   newData(CompDiversionRights),
		irtem:  "99999",
		dcrdiv: 0,
	}
}

// AdminNumber returns the administration (priority) number.
func (r *DiversionRight) AdminNumber() string { return r.irtem }

// SetAdminNumber sets the administration number.
func (r *DiversionRight) SetAdminNumber(v string) {
	if v != r.irtem {
		r.irtem = v
		r.markDirty(r.component)
	}
}

// Decree returns the decreed amount (CFS).
func (r *DiversionRight) Decree() float64 { return r.dcrdiv }

// SetDecree sets the decreed amount.
func (r *DiversionRight) SetDecree(v float64) {
	if v != r.dcrdiv {
		r.dcrdiv = v
		r.markDirty(r.component)
	}
}

// Compare orders rights by base fields, admin number and decree.
func (r *DiversionRight) Compare(other *DiversionRight) int {
	if res := r.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareString(r.irtem, other.irtem); res != 0 {
		return res
	}
	return compareFloat(r.dcrdiv, other.dcrdiv)
}

// Clone returns an unbound copy.
func (r *DiversionRight) Clone() *DiversionRight {
	c := *r
	c.dataset = nil
	c.editing = false
	return &c
}

type rightJSON struct {
	dataJSON
	AdminNumber string  `json:"admin_number"`
	Decree      float64 `json:"decree"`
}

// MarshalJSON implements json.Marshaler.
func (r *DiversionRight) MarshalJSON() ([]byte, error) {
	return json.Marshal(rightJSON{dataJSON: r.toJSON(), AdminNumber: r.irtem, Decree: r.dcrdiv})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *DiversionRight) UnmarshalJSON(b []byte) error {
	var j rightJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*r = DiversionRight{Data: newData(CompDiversionRights), irtem: j.AdminNumber, dcrdiv: j.Decree}
	r.fromJSON(j.dataJSON)
	return nil
}
