package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRecords_Diversions(t *testing.T) {
	d := newTestDiversion()
	d.SetComment("from survey")
	d.SetUTM(500100.5, 4400200.25)
	d.SetCollection(NewCollection(CollectionAggregate, []string{"A", "B"}))
	d.SetDirty(false)

	data, err := MarshalRecords([]*Diversion{d})
	require.NoError(t, err)

	ds := NewDataSet()
	got, err := UnmarshalRecords[Diversion](data, ds)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 0, d.Compare(got[0]))
	assert.Equal(t, "from survey", got[0].Comment())
	assert.Same(t, ds, got[0].DataSet())
	assert.Same(t, ds, got[0].ReturnFlow(0).DataSet())
	assert.Equal(t, []string{"A", "B"}, got[0].Collection().PartIDs(0))
	assert.False(t, got[0].IsDirty())
	assert.False(t, ds.IsDirtyAny())
}

func TestMarshalRecords_AllTypes(t *testing.T) {
	dt := NewDelayTable(false)
	dt.SetTableID("7")
	dt.SetUnits(UnitsFraction)
	dt.SetValues([]float64{0.5, 0.5})

	dla := NewDelayTableAssignment()
	dla.SetID("LOC1")
	dla.SetNumDelayTables(1)
	dla.SetDelayTableID("7", 0)
	dla.SetDelayTablePercent(100, 0)

	p := NewPlan(true)
	p.SetID("PLAN1")
	p.SetPsource("SRC 1")

	cs := NewClimateStation()
	cs.SetID("USC0001")
	cs.SetLatitude(39.75)
	cs.SetRegion1("Denver")

	r := NewDiversionRight()
	r.SetID("R1")
	r.SetAdminNumber("30000.00000")
	r.SetDecree(10)

	t.Run("delay table", func(t *testing.T) {
		data, err := json.Marshal(dt)
		require.NoError(t, err)
		var got DelayTable
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 0, dt.Compare(&got))
		assert.Equal(t, CompDelayTablesDaily, got.Component())
	})

	t.Run("assignment", func(t *testing.T) {
		data, err := json.Marshal(dla)
		require.NoError(t, err)
		var got DelayTableAssignment
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 0, dla.Compare(&got))
	})

	t.Run("plan", func(t *testing.T) {
		data, err := json.Marshal(p)
		require.NoError(t, err)
		var got Plan
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 0, p.Compare(&got))
	})

	t.Run("climate station", func(t *testing.T) {
		data, err := json.Marshal(cs)
		require.NoError(t, err)
		var got ClimateStation
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 0, cs.Compare(&got))
	})

	t.Run("right", func(t *testing.T) {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var got DiversionRight
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 0, r.Compare(&got))
	})
}

func TestUnmarshalRecords_Invalid(t *testing.T) {
	_, err := UnmarshalRecords[Plan]([]byte("{not json"), NewDataSet())
	assert.Error(t, err)

	// null элементы пропускаются без паники
	got, err := UnmarshalRecords[Plan]([]byte("[null]"), NewDataSet())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
