package statemod

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iudanet/statemod/internal/listfile"
	"github.com/iudanet/statemod/internal/models"
)

// Side file suffixes written next to a diversion list file.
const (
	ReturnFlowsSuffix = "ReturnFlows"
	CollectionsSuffix = "Collections"
)

var diversionFields = []string{
	"ID", "Name", "RiverNodeID", "OnOff", "Capacity", "ReplaceResOption",
	"DailyID", "UserName", "DemandType", "EffAnnual", "IrrigatedAcres",
	"UseType", "DemandSource",
	"EffMonthly01", "EffMonthly02", "EffMonthly03", "EffMonthly04",
	"EffMonthly05", "EffMonthly06", "EffMonthly07", "EffMonthly08",
	"EffMonthly09", "EffMonthly10", "EffMonthly11", "EffMonthly12",
}

var (
	returnFlowFields = []string{"ID", "RiverNodeID", "Percent", "DelayTableID"}
	collectionFields = []string{"LocationID", "Year", "CollectionType", "PartType", "PartID"}
	delayTableFields = []string{"DelayTableID", "Date", "ReturnAmount"}
	planFields       = []string{
		"ID", "Name", "RiverNodeID", "OnOff", "PlanType", "Efficiency",
		"ReturnFlowTable", "FailureSwitch", "InitialStorage", "Source",
	}
	rightFields = []string{"ID", "Name", "StructureID", "AdministrationNumber", "Decree", "OnOff"}
)

// WriteDiversionListFile writes diversions to a list file, their return
// flows to the _ReturnFlows side file and their collections to the
// _Collections side file.
func WriteDiversionListFile(path string, divs []*models.Diversion, opts ListOptions) error {
	var rows, rfRows, colRows [][]string
	for _, d := range divs {
		if d == nil {
			continue
		}
		row := []string{
			d.ID(), d.Name(), d.Cgoto(),
			listfile.FormatInt(d.Switch()),
			listfile.FormatFloat(d.Divcap()),
			listfile.FormatInt(d.Ireptype()),
			d.Cdividy(), d.Username(),
			listfile.FormatInt(d.Idvcom()),
			listfile.FormatFloat(d.Divefc()),
			listfile.FormatFloat(d.Area()),
			listfile.FormatInt(d.Irturn()),
			listfile.FormatInt(d.Demsrc()),
		}
		for i := range 12 {
			row = append(row, listfile.FormatFloat(d.Diveff(i)))
		}
		rows = append(rows, row)

		for _, rf := range d.ReturnFlows() {
			rfRows = append(rfRows, []string{
				d.ID(), rf.Crtnid(),
				listfile.FormatFloat(rf.Pcttot()),
				listfile.FormatInt(rf.Irtndl()),
			})
		}
		if c := d.Collection(); c != nil {
			for i, year := range c.Years {
				if i >= len(c.Parts) {
					break
				}
				for _, part := range c.Parts[i] {
					colRows = append(colRows, []string{d.ID(), yearText(year), c.Type, c.PartType, part})
				}
			}
		}
	}

	if err := listfile.Write(path, diversionFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write diversion list: %w", err)
	}
	if err := listfile.Write(listfile.SideFileName(path, ReturnFlowsSuffix), returnFlowFields, rfRows, sideOptions(opts)); err != nil {
		return fmt.Errorf("failed to write return flow list: %w", err)
	}
	if err := listfile.Write(listfile.SideFileName(path, CollectionsSuffix), collectionFields, colRows, sideOptions(opts)); err != nil {
		return fmt.Errorf("failed to write collection list: %w", err)
	}
	return nil
}

// sideOptions keeps the side files from carrying the main file header.
func sideOptions(opts ListOptions) ListOptions {
	opts.Header.PreviousFile = ""
	return opts
}

func yearText(year int) string {
	if year <= 0 {
		return ""
	}
	return listfile.FormatInt(year)
}

// ReadDiversionListFile reads a diversion list file written by
// WriteDiversionListFile. Missing side files leave the diversions without
// return flows or collections.
func ReadDiversionListFile(path string, list ListOptions, opts Options) ([]*models.Diversion, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	divs := make([]*models.Diversion, 0, t.Len())
	byID := make(map[string]*models.Diversion, t.Len())
	for i := range t.Len() {
		d := models.NewDiversion(true)
		d.SetID(t.String(i, "ID"))
		d.SetName(t.String(i, "Name"))
		d.SetCgoto(t.String(i, "RiverNodeID"))
		d.SetSwitchString(t.String(i, "OnOff"))
		if v, ok := t.Float(i, "Capacity"); ok {
			d.SetDivcap(v)
		}
		if v, ok := t.Int(i, "ReplaceResOption"); ok {
			d.SetIreptype(v)
		}
		d.SetCdividy(t.String(i, "DailyID"))
		d.SetUsername(t.String(i, "UserName"))
		if v, ok := t.Int(i, "DemandType"); ok {
			d.SetIdvcom(v)
		}
		if v, ok := t.Float(i, "EffAnnual"); ok {
			d.SetDivefc(v)
		}
		if v, ok := t.Float(i, "IrrigatedAcres"); ok {
			d.SetArea(v)
		}
		if v, ok := t.Int(i, "UseType"); ok {
			d.SetIrturn(v)
		}
		if v, ok := t.Int(i, "DemandSource"); ok {
			d.SetDemsrc(v)
		}
		for m := range 12 {
			if v, ok := t.Float(i, fmt.Sprintf("EffMonthly%02d", m+1)); ok {
				d.SetDiveff(m, v)
			}
		}
		divs = append(divs, d)
		if _, dup := byID[d.ID()]; !dup {
			byID[d.ID()] = d
		}
	}

	rf, err := readSideFile(listfile.SideFileName(path, ReturnFlowsSuffix), list)
	if err != nil {
		return nil, err
	}
	if rf != nil {
		for i := range rf.Len() {
			d, ok := byID[rf.String(i, "ID")]
			if !ok {
				continue
			}
			r := models.NewReturnFlow(models.CompDiversionStations)
			r.SetID(d.ID())
			r.SetCrtnid(rf.String(i, "RiverNodeID"))
			if v, ok := rf.Float(i, "Percent"); ok {
				r.SetPcttot(v)
			}
			if v, ok := rf.Int(i, "DelayTableID"); ok {
				r.SetIrtndl(v)
			}
			r.SetDirty(false)
			d.AddReturnFlow(r)
		}
	}

	col, err := readSideFile(listfile.SideFileName(path, CollectionsSuffix), list)
	if err != nil {
		return nil, err
	}
	if col != nil {
		for i := range col.Len() {
			d, ok := byID[col.String(i, "LocationID")]
			if !ok {
				continue
			}
			c := d.Collection()
			if c == nil {
				c = models.NewCollection(col.String(i, "CollectionType"), nil)
				if pt := col.String(i, "PartType"); pt != "" {
					c.PartType = pt
				}
				d.SetCollection(c)
			}
			c.SetPartIDs(append(c.PartIDs(0), col.String(i, "PartID")))
		}
	}

	for _, d := range divs {
		d.SetDirty(false)
		d.SetDataSet(opts.DataSet)
	}
	return divs, nil
}

func readSideFile(path string, opts ListOptions) (*listfile.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return listfile.Read(path, opts)
}

// WriteDelayTableListFile writes one row per delay table value. Date is the
// 1-based position of the value in its table.
func WriteDelayTableListFile(path string, tables []*models.DelayTable, opts ListOptions) error {
	var rows [][]string
	for _, t := range tables {
		if t == nil {
			continue
		}
		for i, v := range t.Values() {
			rows = append(rows, []string{t.TableID(), listfile.FormatInt(i + 1), listfile.FormatFloat(v)})
		}
	}
	if err := listfile.Write(path, delayTableFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write delay table list: %w", err)
	}
	return nil
}

// ReadDelayTableListFile groups consecutive rows with the same table id
// into one delay table.
func ReadDelayTableListFile(path string, list ListOptions, opts DelayTableOptions) ([]*models.DelayTable, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	tables := []*models.DelayTable{}
	var cur *models.DelayTable
	for i := range t.Len() {
		id := t.String(i, "DelayTableID")
		if cur == nil || cur.TableID() != id {
			cur = models.NewDelayTable(opts.Monthly)
			cur.SetTableID(id)
			cur.SetUnits(opts.units())
			tables = append(tables, cur)
		}
		if v, ok := t.Float(i, "ReturnAmount"); ok {
			cur.AddValue(v)
		}
	}
	for _, dt := range tables {
		dt.SetDirty(false)
		dt.SetDataSet(opts.DataSet)
	}
	return tables, nil
}

// WritePlanListFile writes plans to a list file.
func WritePlanListFile(path string, plans []*models.Plan, opts ListOptions) error {
	var rows [][]string
	for _, p := range plans {
		if p == nil {
			continue
		}
		rows = append(rows, []string{
			p.ID(), p.Name(), p.Cgoto(),
			listfile.FormatInt(p.Switch()),
			listfile.FormatInt(p.PlanType()),
			listfile.FormatFloat(p.Peff()),
			listfile.FormatInt(p.IPrf()),
			listfile.FormatInt(p.IPfail()),
			listfile.FormatFloat(p.Psto1()),
			p.Psource(),
		})
	}
	if err := listfile.Write(path, planFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write plan list: %w", err)
	}
	return nil
}

// ReadPlanListFile reads a plan list file.
func ReadPlanListFile(path string, list ListOptions, opts Options) ([]*models.Plan, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	plans := make([]*models.Plan, 0, t.Len())
	for i := range t.Len() {
		p := models.NewPlan(true)
		p.SetID(t.String(i, "ID"))
		p.SetName(t.String(i, "Name"))
		p.SetCgoto(t.String(i, "RiverNodeID"))
		p.SetSwitchString(t.String(i, "OnOff"))
		if v, ok := t.Int(i, "PlanType"); ok {
			p.SetPlanType(v)
		}
		if v, ok := t.Float(i, "Efficiency"); ok {
			p.SetPeff(v)
		}
		if v, ok := t.Int(i, "ReturnFlowTable"); ok {
			p.SetIPrf(v)
		}
		if v, ok := t.Int(i, "FailureSwitch"); ok {
			p.SetIPfail(v)
		}
		if v, ok := t.Float(i, "InitialStorage"); ok {
			p.SetPsto1(v)
		}
		p.SetPsource(t.String(i, "Source"))
		p.SetDirty(false)
		p.SetDataSet(opts.DataSet)
		plans = append(plans, p)
	}
	return plans, nil
}

// WriteDiversionRightListFile writes rights to a list file.
func WriteDiversionRightListFile(path string, rights []*models.DiversionRight, opts ListOptions) error {
	var rows [][]string
	for _, r := range rights {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.ID(), r.Name(), r.Cgoto(), r.AdminNumber(),
			listfile.FormatFloat(r.Decree()),
			listfile.FormatInt(r.Switch()),
		})
	}
	if err := listfile.Write(path, rightFields, rows, opts); err != nil {
		return fmt.Errorf("failed to write right list: %w", err)
	}
	return nil
}

// ReadDiversionRightListFile reads a right list file.
func ReadDiversionRightListFile(path string, list ListOptions, opts Options) ([]*models.DiversionRight, error) {
	t, err := listfile.Read(path, list)
	if err != nil {
		return nil, err
	}
	rights := make([]*models.DiversionRight, 0, t.Len())
	for i := range t.Len() {
		r := models.NewDiversionRight()
		r.SetID(t.String(i, "ID"))
		r.SetName(t.String(i, "Name"))
		r.SetCgoto(t.String(i, "StructureID"))
		if s := t.String(i, "AdministrationNumber"); s != "" {
			r.SetAdminNumber(s)
		}
		if v, ok := t.Float(i, "Decree"); ok {
			r.SetDecree(v)
		}
		r.SetSwitchString(t.String(i, "OnOff"))
		r.SetDirty(false)
		r.SetDataSet(opts.DataSet)
		rights = append(rights, r)
	}
	return rights, nil
}
