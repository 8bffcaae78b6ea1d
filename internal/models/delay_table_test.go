package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayTable_SetTableID(t *testing.T) {
	ds := NewDataSet()
	dt := NewDelayTable(true)
	dt.SetDataSet(ds)

	dt.SetTableID("2037")
	assert.Equal(t, "2037", dt.TableID())
	assert.Equal(t, "2037", dt.Name())
	assert.True(t, ds.IsDirty(CompDelayTablesMonthly))

	daily := NewDelayTable(false)
	daily.SetDataSet(ds)
	daily.SetTableID("1")
	assert.True(t, ds.IsDirty(CompDelayTablesDaily))
	assert.False(t, daily.IsMonthly())
}

func TestDelayTable_Values(t *testing.T) {
	dt := NewDelayTable(true)
	assert.Equal(t, UnitsPercent, dt.Units())
	assert.Equal(t, 0, dt.Ndly())

	dt.AddValue(50)
	dt.AddValue(30)
	require.NoError(t, dt.InsertValue(1, 20))
	assert.Equal(t, []float64{50, 20, 30}, dt.Values())
	assert.Equal(t, 3, dt.Ndly())

	// Запись за концом списка добавляет значение
	dt.SetValue(10, 5)
	assert.Equal(t, []float64{50, 20, 30, 5}, dt.Values())

	dt.SetValue(0, 45)
	assert.Equal(t, 45.0, dt.Value(0))
	assert.Equal(t, MissingDouble, dt.Value(99))

	require.NoError(t, dt.RemoveValue(3))
	assert.Equal(t, []float64{45, 20, 30}, dt.Values())
	assert.InDelta(t, 95.0, dt.Sum(), 1e-9)

	assert.ErrorIs(t, dt.RemoveValue(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, dt.InsertValue(5, 1), ErrIndexOutOfRange)

	dt.Scale(0.01)
	assert.InDeltaSlice(t, []float64{0.45, 0.20, 0.30}, dt.Values(), 1e-12)
}

func TestDelayTable_SetValuesCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	dt := NewDelayTable(true)
	dt.SetValues(in)
	in[0] = 9
	assert.Equal(t, 1.0, dt.Value(0))
	assert.False(t, dt.IsDirty())
}

func TestDelayTable_BackupRestore(t *testing.T) {
	ds := NewDataSet()
	dt := NewDelayTable(true)
	dt.SetTableID("1")
	dt.SetValues([]float64{60, 40})
	dt.SetDirty(false)
	dt.SetDataSet(ds)
	before := dt.Clone()

	dt.CreateBackup()
	dt.SetValue(0, 10)
	dt.AddValue(50)
	dt.SetUnits(UnitsFraction)
	assert.False(t, ds.IsDirtyAny())

	require.NoError(t, dt.RestoreOriginal())
	assert.Equal(t, 0, dt.Compare(before))
	assert.Equal(t, []float64{60, 40}, dt.Values())
	assert.False(t, dt.IsDirty())

	dt.CreateBackup()
	dt.SetValue(1, 41)
	dt.AcceptChanges()
	assert.True(t, ds.IsDirty(CompDelayTablesMonthly))
	assert.ErrorIs(t, dt.RestoreOriginal(), ErrNoBackup)
}

func TestDelayTable_Compare(t *testing.T) {
	a := NewDelayTable(true)
	a.SetValues([]float64{1, 2})
	b := a.Clone()
	assert.Equal(t, 0, a.Compare(b))

	b.AddValue(3)
	assert.Equal(t, -1, a.Compare(b))

	c := a.Clone()
	c.SetUnits(UnitsFraction)
	assert.Equal(t, -1, c.Compare(a))

	d := NewDelayTable(false)
	d.SetValues([]float64{1, 2})
	assert.Equal(t, -1, d.Compare(a))
}

func TestDelayTableAssignment(t *testing.T) {
	ds := NewDataSet()
	a := NewDelayTableAssignment()
	a.SetDataSet(ds)

	a.SetNumDelayTables(2)
	a.SetDelayTableID("1", 0)
	a.SetDelayTablePercent(60, 0)
	a.SetDelayTableID("2", 1)
	a.SetDelayTablePercent(40, 1)

	assert.Equal(t, 2, a.NumDelayTables())
	assert.Equal(t, "2", a.DelayTableID(1))
	assert.Equal(t, 60.0, a.DelayTablePercent(0))
	assert.InDelta(t, 100.0, a.TotalPercent(), 1e-9)
	assert.True(t, ds.IsDirty(CompDelayTableAssignments))

	// Вне диапазона: пустые значения, запись игнорируется
	assert.Equal(t, "", a.DelayTableID(2))
	assert.Equal(t, 0.0, a.DelayTablePercent(-1))
	a.SetDelayTableID("x", 5)
	a.SetDelayTablePercent(1, 5)
	assert.Equal(t, 2, a.NumDelayTables())

	a.SetDirty(false)
	ds.ClearDirty()
	before := a.Clone()
	a.CreateBackup()
	a.SetDelayTablePercent(10, 0)
	a.SetNumDelayTables(1)
	require.NoError(t, a.RestoreOriginal())
	assert.Equal(t, 0, a.Compare(before))
	assert.False(t, ds.IsDirtyAny())

	a.SetNumDelayTables(-3)
	assert.Equal(t, 0, a.NumDelayTables())
}

func TestPlan(t *testing.T) {
	p := NewPlan(true)
	assert.Equal(t, 1, p.PlanType())
	assert.Equal(t, 999.0, p.Peff())
	assert.Equal(t, 999, p.IPrf())
	assert.Equal(t, 0, p.IPfail())
	assert.Equal(t, 0.0, p.Psto1())
	assert.Equal(t, "", p.Psource())

	m := NewPlan(false)
	assert.Equal(t, MissingInt, m.PlanType())
	assert.Equal(t, MissingDouble, m.Psto1())

	ds := NewDataSet()
	p.SetDataSet(ds)
	before := p.Clone()
	p.CreateBackup()
	p.SetPlanType(3)
	p.SetPeff(50)
	p.SetIPrf(2)
	p.SetIPfail(1)
	p.SetPsto1(10)
	p.SetPsource("SRC")
	assert.True(t, p.Changed())
	require.NoError(t, p.RestoreOriginal())
	assert.Equal(t, 0, p.Compare(before))
	assert.False(t, ds.IsDirtyAny())
}

func TestClimateStation(t *testing.T) {
	ds := NewDataSet()
	c := NewClimateStation()
	c.SetDataSet(ds)
	assert.Equal(t, MissingDouble, c.Latitude())

	c.SetLatitude(40.5)
	c.SetElevation(5280)
	c.SetRegion1("Denver")
	c.SetRegion2("14010001")
	assert.True(t, ds.IsDirty(CompClimateStations))

	c.SetDirty(false)
	ds.ClearDirty()
	before := c.Clone()
	c.CreateBackup()
	c.SetRegion1("Adams")
	require.NoError(t, c.RestoreOriginal())
	assert.Equal(t, 0, c.Compare(before))
	assert.Equal(t, "Denver", c.Region1())

	c.CreateBackup()
	c.SetElevation(6000)
	c.AcceptChanges()
	assert.True(t, ds.IsDirty(CompClimateStations))
	assert.Equal(t, 6000.0, c.Elevation())
}

func TestReturnFlowAndRight(t *testing.T) {
	rf := NewReturnFlow(CompDiversionStations)
	assert.Equal(t, 100.0, rf.Pcttot())
	rf.SetIrtndl(12)
	assert.Equal(t, "12", rf.DelayTableID())
	c := rf.Clone()
	c.SetPcttot(50)
	assert.Equal(t, 1, rf.Compare(c))

	r := NewDiversionRight()
	r.SetAdminNumber("12345.00000")
	r.SetDecree(2.5)
	rc := r.Clone()
	assert.Equal(t, 0, r.Compare(rc))
	rc.SetDecree(3)
	assert.Equal(t, -1, r.Compare(rc))
}
