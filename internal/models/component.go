package models

import (
	"fmt"
	"strings"
)

// Component identifies a record type within a data set.
// Dirty state is tracked per component.
type Component int

// Component константы для типов записей
const (
	CompDiversionStations Component = iota
	CompDiversionRights
	CompDelayTablesMonthly
	CompDelayTablesDaily
	CompPlans
	CompDelayTableAssignments
	CompClimateStations
	CompGeoView
	componentCount // must be last
)

var componentNames = [componentCount]string{
	CompDiversionStations:     "diversions",
	CompDiversionRights:       "rights",
	CompDelayTablesMonthly:    "delaytables",
	CompDelayTablesDaily:      "delaytables-daily",
	CompPlans:                 "plans",
	CompDelayTableAssignments: "dla",
	CompClimateStations:       "climate",
	CompGeoView:               "geoview",
}

// componentAliases maps file extensions and short names to components.
var componentAliases = map[string]Component{
	"dds":         CompDiversionStations,
	"diversion":   CompDiversionStations,
	"ddr":         CompDiversionRights,
	"right":       CompDiversionRights,
	"dly":         CompDelayTablesMonthly,
	"delaytable":  CompDelayTablesMonthly,
	"dld":         CompDelayTablesDaily,
	"pln":         CompPlans,
	"plan":        CompPlans,
	"assignments": CompDelayTableAssignments,
	"cli":         CompClimateStations,
}

func (c Component) String() string {
	if c >= 0 && c < componentCount {
		return componentNames[c]
	}
	return "unknown"
}

// ParseComponent converts a name or file extension like "dds" to its Component.
func ParseComponent(s string) (Component, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	for i, name := range componentNames {
		if name == key {
			return Component(i), nil
		}
	}
	if c, ok := componentAliases[key]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponent, s)
}

// DataSet holds the shared dirty state of every component of a data set.
// Records hold a pointer to the DataSet they belong to; the DataSet is not
// safe for concurrent use and assumes a single editing session.
type DataSet struct {
	dirty         [componentCount]bool
	notifications [componentCount]int
}

// NewDataSet creates an empty, clean data set.
func NewDataSet() *DataSet {
	return &DataSet{}
}

// SetDirty sets the dirty flag for a component.
func (ds *DataSet) SetDirty(comp Component, dirty bool) {
	if comp < 0 || comp >= componentCount {
		return
	}
	// Считаем только переходы clean -> dirty
	if dirty && !ds.dirty[comp] {
		ds.notifications[comp]++
	}
	ds.dirty[comp] = dirty
}

// IsDirty reports whether a component has unsaved changes.
func (ds *DataSet) IsDirty(comp Component) bool {
	if comp < 0 || comp >= componentCount {
		return false
	}
	return ds.dirty[comp]
}

// IsDirtyAny reports whether any component has unsaved changes.
func (ds *DataSet) IsDirtyAny() bool {
	for _, d := range ds.dirty {
		if d {
			return true
		}
	}
	return false
}

// DirtyComponents returns dirty components in declaration order.
func (ds *DataSet) DirtyComponents() []Component {
	var out []Component
	for i, d := range ds.dirty {
		if d {
			out = append(out, Component(i))
		}
	}
	return out
}

// Notifications returns how many times the component went from clean to dirty.
func (ds *DataSet) Notifications(comp Component) int {
	if comp < 0 || comp >= componentCount {
		return 0
	}
	return ds.notifications[comp]
}

// ClearDirty marks every component clean, for example after a save.
func (ds *DataSet) ClearDirty() {
	for i := range ds.dirty {
		ds.dirty[i] = false
	}
}
