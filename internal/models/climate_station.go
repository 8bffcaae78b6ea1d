package models

import "encoding/json"

// ClimateStation is a StateCU climate station.
type ClimateStation struct {
	Data
	original  *ClimateStation
	region1   string
	region2   string
	latitude  float64
	elevation float64
}

// NewClimateStation creates a station with missing location values.
func NewClimateStation() *ClimateStation {
	return &ClimateStation{
		Data:      newData(CompClimateStations),
		latitude:  MissingDouble,
		elevation: MissingDouble,
	}
}

func (c *ClimateStation) touch() { c.markDirty(CompClimateStations) }

// Latitude returns the latitude in decimal degrees.
func (c *ClimateStation) Latitude() float64 { return c.latitude }

// SetLatitude sets the latitude.
func (c *ClimateStation) SetLatitude(v float64) {
	if v != c.latitude {
		c.latitude = v
		c.touch()
	}
}

// Elevation returns the elevation in feet.
func (c *ClimateStation) Elevation() float64 { return c.elevation }

// SetElevation sets the elevation.
func (c *ClimateStation) SetElevation(v float64) {
	if v != c.elevation {
		c.elevation = v
		c.touch()
	}
}

// Region1 returns the first region tag, usually the county.
func (c *ClimateStation) Region1() string { return c.region1 }

// SetRegion1 sets the first region tag.
func (c *ClimateStation) SetRegion1(v string) {
	if v != c.region1 {
		c.region1 = v
		c.touch()
	}
}

// Region2 returns the second region tag, usually the HUC.
func (c *ClimateStation) Region2() string { return c.region2 }

// SetRegion2 sets the second region tag.
func (c *ClimateStation) SetRegion2(v string) {
	if v != c.region2 {
		c.region2 = v
		c.touch()
	}
}

// CreateBackup snapshots the station before an edit session.
func (c *ClimateStation) CreateBackup() {
	s := *c
	s.Data = c.snapshotBase()
	s.original = nil
	c.original = &s
	c.editing = true
}

// RestoreOriginal reverts to the backup and ends the edit session.
func (c *ClimateStation) RestoreOriginal() error {
	o := c.original
	if o == nil {
		return ErrNoBackup
	}
	c.restoreBase(&o.Data)
	c.latitude = o.latitude
	c.elevation = o.elevation
	c.region1 = o.region1
	c.region2 = o.region2
	c.original = nil
	return nil
}

// AcceptChanges ends the edit session keeping the current values.
func (c *ClimateStation) AcceptChanges() {
	if c.original == nil {
		return
	}
	changed := c.Changed()
	c.original = nil
	c.editing = false
	if changed {
		c.touch()
	}
}

// Changed reports whether the station differs from its backup.
func (c *ClimateStation) Changed() bool {
	if c.original == nil {
		return true
	}
	return c.Compare(c.original) != 0
}

// Compare orders stations by base fields, latitude, elevation and regions.
func (c *ClimateStation) Compare(other *ClimateStation) int {
	if res := c.compareBase(&other.Data); res != 0 {
		return res
	}
	if res := compareFloat(c.latitude, other.latitude); res != 0 {
		return res
	}
	if res := compareFloat(c.elevation, other.elevation); res != 0 {
		return res
	}
	if res := compareString(c.region1, other.region1); res != 0 {
		return res
	}
	return compareString(c.region2, other.region2)
}

// Clone returns an unbound copy.
func (c *ClimateStation) Clone() *ClimateStation {
	out := *c
	out.dataset = nil
	out.editing = false
	out.original = nil
	return &out
}

type climateStationJSON struct {
	dataJSON
	Region1   string  `json:"region1"`
	Region2   string  `json:"region2"`
	Latitude  float64 `json:"latitude"`
	Elevation float64 `json:"elevation"`
}

// MarshalJSON implements json.Marshaler.
func (c *ClimateStation) MarshalJSON() ([]byte, error) {
	return json.Marshal(climateStationJSON{
		dataJSON:  c.toJSON(),
		Region1:   c.region1,
		Region2:   c.region2,
		Latitude:  c.latitude,
		Elevation: c.elevation,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ClimateStation) UnmarshalJSON(b []byte) error {
	var j climateStationJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*c = ClimateStation{
		Data:      newData(CompClimateStations),
		region1:   j.Region1,
		region2:   j.Region2,
		latitude:  j.Latitude,
		elevation: j.Elevation,
	}
	c.fromJSON(j.dataJSON)
	return nil
}
