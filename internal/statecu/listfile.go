package statecu

import (
	"fmt"

	"github.com/iudanet/statemod/internal/listfile"
	"github.com/iudanet/statemod/internal/models"
)

var (
	assignmentFields = []string{"ID", "DelayTableID", "Percent"}
	climateFields    = []string{"ID", "Name", "Latitude", "Elevation", "Region1", "Region2"}
)

// WriteDelayTableAssignmentListFile writes one row per (table, percent) pair.
func WriteDelayTableAssignmentListFile(path string, data []*models.DelayTableAssignment, opts ListOptions) error {
	var rows [][]string
	for _, a := range data {
		if a == nil {
			continue
		}
		for i := range a.NumDelayTables() {
			rows = append(rows, []string{a.ID(), a.DelayTableID(i), listfile.FormatFloat(a.DelayTablePercent(i))})
		}
	}
	if err := listfile.Write(path, assignmentFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write delay table assignment list: %w", err)
	}
	return nil
}

// ReadDelayTableAssignmentListFile groups consecutive rows with the same
// location id into one assignment.
func ReadDelayTableAssignmentListFile(path string, list ListOptions, opts Options) ([]*models.DelayTableAssignment, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	type pair struct {
		id      string
		percent float64
	}
	var (
		out   []*models.DelayTableAssignment
		pairs [][]pair
	)
	for i := range t.Len() {
		id := t.String(i, "ID")
		if len(out) == 0 || out[len(out)-1].ID() != id {
			a := models.NewDelayTableAssignment()
			a.SetID(id)
			out = append(out, a)
			pairs = append(pairs, nil)
		}
		percent, _ := t.Float(i, "Percent")
		pairs[len(pairs)-1] = append(pairs[len(pairs)-1], pair{id: t.String(i, "DelayTableID"), percent: percent})
	}
	for i, a := range out {
		a.SetNumDelayTables(len(pairs[i]))
		for j, p := range pairs[i] {
			a.SetDelayTableID(p.id, j)
			a.SetDelayTablePercent(p.percent, j)
		}
		a.SetDirty(false)
		a.SetDataSet(opts.DataSet)
	}
	if out == nil {
		out = []*models.DelayTableAssignment{}
	}
	return out, nil
}

// WriteClimateStationListFile writes climate stations to a list file.
func WriteClimateStationListFile(path string, stations []*models.ClimateStation, opts ListOptions) error {
	var rows [][]string
	for _, c := range stations {
		if c == nil {
			continue
		}
		rows = append(rows, []string{
			c.ID(), c.Name(),
			listfile.FormatFloat(c.Latitude()),
			listfile.FormatFloat(c.Elevation()),
			c.Region1(), c.Region2(),
		})
	}
	if err := listfile.Write(path, climateFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write climate station list: %w", err)
	}
	return nil
}

// ReadClimateStationListFile reads a climate station list file.
func ReadClimateStationListFile(path string, list ListOptions, opts Options) ([]*models.ClimateStation, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	out := make([]*models.ClimateStation, 0, t.Len())
	for i := range t.Len() {
		c := models.NewClimateStation()
		c.SetID(t.String(i, "ID"))
		c.SetName(t.String(i, "Name"))
		if v, ok := t.Float(i, "Latitude"); ok {
			c.SetLatitude(v)
		}
		if v, ok := t.Float(i, "Elevation"); ok {
			c.SetElevation(v)
		}
		c.SetRegion1(t.String(i, "Region1"))
		c.SetRegion2(t.String(i, "Region2"))
		c.SetDirty(false)
		c.SetDataSet(opts.DataSet)
		out = append(out, c)
	}
	return out, nil
}
