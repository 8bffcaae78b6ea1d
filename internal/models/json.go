package models

import (
	"encoding/json"
	"fmt"
)

// dataJSON is the persistent form of the base fields.
// Dirty and edit state are not persisted.
type dataJSON struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Cgoto   string  `json:"cgoto,omitempty"`
	Comment string  `json:"comment,omitempty"`
	Switch  int     `json:"switch"`
	UTMX    float64 `json:"utm_x"`
	UTMY    float64 `json:"utm_y"`
}

func (d *Data) toJSON() dataJSON {
	return dataJSON{
		ID:      d.id,
		Name:    d.name,
		Cgoto:   d.cgoto,
		Comment: d.comment,
		Switch:  d.onOff,
		UTMX:    d.utmX,
		UTMY:    d.utmY,
	}
}

func (d *Data) fromJSON(j dataJSON) {
	d.id = j.ID
	d.name = j.Name
	d.cgoto = j.Cgoto
	d.comment = j.Comment
	d.onOff = j.Switch
	d.utmX = j.UTMX
	d.utmY = j.UTMY
}

// MarshalRecords encodes a record list for storage.
func MarshalRecords[T json.Marshaler](records []T) ([]byte, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return data, nil
}

// UnmarshalRecords decodes a record list and binds every record to ds.
// Decoded records are clean.
func UnmarshalRecords[T any, PT interface {
	*T
	json.Unmarshaler
	SetDataSet(*DataSet)
}](data []byte, ds *DataSet) ([]*T, error) {
	var records []*T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal records: %w", err)
	}
	for _, r := range records {
		if r != nil {
			PT(r).SetDataSet(ds)
		}
	}
	return records, nil
}
