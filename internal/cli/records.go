package cli

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
	"github.com/iudanet/statemod/internal/statecu"
	"github.com/iudanet/statemod/internal/statemod"
	"github.com/iudanet/statemod/internal/storage"
	"github.com/iudanet/statemod/internal/validation"
)

type record interface {
	ID() string
	Name() string
	json.Marshaler
}

// dataFile is the record list of one component.
type dataFile interface {
	Component() models.Component
	Len() int
	Catalog() []storage.CatalogRecord
	Write(path string, header fixedformat.HeaderOptions) error
	WriteList(path string, header fixedformat.HeaderOptions) error
	Check() []validation.Problem
	Marshal() ([]byte, error)
}

type records[T record] struct {
	comp      models.Component
	items     []T
	write     func(path string, items []T, header fixedformat.HeaderOptions) error
	writeList func(path string, items []T, header fixedformat.HeaderOptions) error
	check     func(items []T) []validation.Problem
}

func (r *records[T]) Component() models.Component { return r.comp }

func (r *records[T]) Len() int { return len(r.items) }

func (r *records[T]) Catalog() []storage.CatalogRecord {
	out := make([]storage.CatalogRecord, len(r.items))
	for i, item := range r.items {
		out[i] = storage.CatalogRecord{RecordID: item.ID(), Name: item.Name(), Position: i}
	}
	return out
}

func (r *records[T]) Write(path string, header fixedformat.HeaderOptions) error {
	return r.write(path, r.items, header)
}

func (r *records[T]) WriteList(path string, header fixedformat.HeaderOptions) error {
	return r.writeList(path, r.items, header)
}

func (r *records[T]) Check() []validation.Problem { return r.check(r.items) }

func (r *records[T]) Marshal() ([]byte, error) { return models.MarshalRecords(r.items) }

// codecOptions returns the StateMod options for the data set and header.
func (c *Cli) codecOptions(ds *models.DataSet, header fixedformat.HeaderOptions) statemod.Options {
	opts := c.settings.CodecOptions(ds, c.logger)
	opts.Header = header
	return opts
}

func (c *Cli) delayTableOptions(comp models.Component, ds *models.DataSet, header fixedformat.HeaderOptions) statemod.DelayTableOptions {
	opts := c.settings.DelayTableOptions(ds, c.logger)
	opts.Header = header
	switch comp {
	case models.CompDelayTablesDaily:
		opts.Monthly = false
	case models.CompDelayTablesMonthly:
		opts.Monthly = true
	}
	return opts
}

func (c *Cli) listOptions(header fixedformat.HeaderOptions) statemod.ListOptions {
	opts := c.settings.ListOptions(c.logger)
	opts.Header = header
	return opts
}

// wrap binds typed records to the writers and checks of their component.
func (c *Cli) wrap(comp models.Component, items any) (dataFile, error) {
	switch v := items.(type) {
	case []*models.Diversion:
		return &records[*models.Diversion]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.Diversion, h fixedformat.HeaderOptions) error {
				return statemod.WriteDiversions(path, items, c.codecOptions(nil, h))
			},
			writeList: func(path string, items []*models.Diversion, h fixedformat.HeaderOptions) error {
				return statemod.WriteDiversionListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckDiversions,
		}, nil
	case []*models.DiversionRight:
		return &records[*models.DiversionRight]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.DiversionRight, h fixedformat.HeaderOptions) error {
				return statemod.WriteDiversionRights(path, items, c.codecOptions(nil, h))
			},
			writeList: func(path string, items []*models.DiversionRight, h fixedformat.HeaderOptions) error {
				return statemod.WriteDiversionRightListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckRights,
		}, nil
	case []*models.DelayTable:
		return &records[*models.DelayTable]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.DelayTable, h fixedformat.HeaderOptions) error {
				return statemod.WriteDelayTables(path, items, c.delayTableOptions(comp, nil, h))
			},
			writeList: func(path string, items []*models.DelayTable, h fixedformat.HeaderOptions) error {
				return statemod.WriteDelayTableListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckDelayTables,
		}, nil
	case []*models.Plan:
		return &records[*models.Plan]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.Plan, h fixedformat.HeaderOptions) error {
				return statemod.WritePlans(path, items, c.codecOptions(nil, h))
			},
			writeList: func(path string, items []*models.Plan, h fixedformat.HeaderOptions) error {
				return statemod.WritePlanListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckPlans,
		}, nil
	case []*models.DelayTableAssignment:
		return &records[*models.DelayTableAssignment]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.DelayTableAssignment, h fixedformat.HeaderOptions) error {
				return statecu.WriteDelayTableAssignments(path, items, c.codecOptions(nil, h))
			},
			writeList: func(path string, items []*models.DelayTableAssignment, h fixedformat.HeaderOptions) error {
				return statecu.WriteDelayTableAssignmentListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckAssignments,
		}, nil
	case []*models.ClimateStation:
		return &records[*models.ClimateStation]{
			comp:  comp,
			items: v,
			write: func(path string, items []*models.ClimateStation, h fixedformat.HeaderOptions) error {
				return statecu.WriteClimateStations(path, items, c.codecOptions(nil, h))
			},
			writeList: func(path string, items []*models.ClimateStation, h fixedformat.HeaderOptions) error {
				return statecu.WriteClimateStationListFile(path, items, c.listOptions(h))
			},
			check: validation.CheckClimateStations,
		}, nil
	}
	return nil, fmt.Errorf("unsupported records for %s: %T", comp, items)
}

func (c *Cli) wrapResult(comp models.Component, items any, err error) (dataFile, error) {
	if err != nil {
		return nil, err
	}
	return c.wrap(comp, items)
}

// readFile reads a data file of the component.
func (c *Cli) readFile(comp models.Component, path string, ds *models.DataSet) (dataFile, error) {
	opts := c.codecOptions(ds, fixedformat.HeaderOptions{})
	switch comp {
	case models.CompDiversionStations:
		items, err := statemod.ReadDiversions(path, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDiversionRights:
		items, err := statemod.ReadDiversionRights(path, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTablesMonthly, models.CompDelayTablesDaily:
		items, err := statemod.ReadDelayTables(path, c.delayTableOptions(comp, ds, fixedformat.HeaderOptions{}))
		return c.wrapResult(comp, items, err)
	case models.CompPlans:
		items, err := statemod.ReadPlans(path, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTableAssignments:
		items, err := statecu.ReadDelayTableAssignments(path, opts)
		return c.wrapResult(comp, items, err)
	case models.CompClimateStations:
		items, err := statecu.ReadClimateStations(path, opts)
		return c.wrapResult(comp, items, err)
	}
	return nil, fmt.Errorf("%w: %s has no file format", models.ErrUnknownComponent, comp)
}

// readListFile reads a list file of the component.
func (c *Cli) readListFile(comp models.Component, path string, ds *models.DataSet) (dataFile, error) {
	list := c.listOptions(fixedformat.HeaderOptions{})
	opts := c.codecOptions(ds, fixedformat.HeaderOptions{})
	switch comp {
	case models.CompDiversionStations:
		items, err := statemod.ReadDiversionListFile(path, list, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDiversionRights:
		items, err := statemod.ReadDiversionRightListFile(path, list, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTablesMonthly, models.CompDelayTablesDaily:
		items, err := statemod.ReadDelayTableListFile(path, list, c.delayTableOptions(comp, ds, fixedformat.HeaderOptions{}))
		return c.wrapResult(comp, items, err)
	case models.CompPlans:
		items, err := statemod.ReadPlanListFile(path, list, opts)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTableAssignments:
		items, err := statecu.ReadDelayTableAssignmentListFile(path, list, opts)
		return c.wrapResult(comp, items, err)
	case models.CompClimateStations:
		items, err := statecu.ReadClimateStationListFile(path, list, opts)
		return c.wrapResult(comp, items, err)
	}
	return nil, fmt.Errorf("%w: %s has no list format", models.ErrUnknownComponent, comp)
}

// unmarshal decodes snapshot data of the component.
func (c *Cli) unmarshal(comp models.Component, data []byte, ds *models.DataSet) (dataFile, error) {
	switch comp {
	case models.CompDiversionStations:
		items, err := models.UnmarshalRecords[models.Diversion](data, ds)
		return c.wrapResult(comp, items, err)
	case models.CompDiversionRights:
		items, err := models.UnmarshalRecords[models.DiversionRight](data, ds)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTablesMonthly, models.CompDelayTablesDaily:
		items, err := models.UnmarshalRecords[models.DelayTable](data, ds)
		return c.wrapResult(comp, items, err)
	case models.CompPlans:
		items, err := models.UnmarshalRecords[models.Plan](data, ds)
		return c.wrapResult(comp, items, err)
	case models.CompDelayTableAssignments:
		items, err := models.UnmarshalRecords[models.DelayTableAssignment](data, ds)
		return c.wrapResult(comp, items, err)
	case models.CompClimateStations:
		items, err := models.UnmarshalRecords[models.ClimateStation](data, ds)
		return c.wrapResult(comp, items, err)
	}
	return nil, fmt.Errorf("%w: %s cannot be restored", models.ErrUnknownComponent, comp)
}

// parseComponent accepts a component name or file extension.
func parseComponent(s string) (models.Component, error) {
	comp, err := models.ParseComponent(s)
	if err != nil {
		return 0, err
	}
	if comp == models.CompGeoView {
		return 0, fmt.Errorf("%w: %q has no data file", models.ErrUnknownComponent, s)
	}
	return comp, nil
}
