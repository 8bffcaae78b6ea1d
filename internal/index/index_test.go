package index

import (
	"testing"

	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diversion(id string, tables ...int) *models.Diversion {
	d := models.NewDiversion(true)
	d.SetID(id)
	for _, t := range tables {
		rf := models.NewReturnFlow(models.CompDiversionStations)
		rf.SetIrtndl(t)
		d.AddReturnFlow(rf)
	}
	return d
}

func table(id string) *models.DelayTable {
	dt := models.NewDelayTable(true)
	dt.SetTableID(id)
	return dt
}

func right(id, structure string) *models.DiversionRight {
	r := models.NewDiversionRight()
	r.SetID(id)
	r.SetCgoto(structure)
	return r
}

func TestIndex(t *testing.T) {
	first := diversion("D1")
	divs := []*models.Diversion{first, diversion("D2"), diversion("D1"), diversion("d2")}

	ix := New(divs)
	assert.Equal(t, 3, ix.Len())
	got, ok := ix.Get("D1")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, []string{"D1"}, ix.Duplicates())
	assert.Equal(t, []string{"D1", "D2", "d2"}, ix.IDs())
	assert.False(t, ix.Has("D3"))

	fold := NewFold(divs)
	assert.Equal(t, 2, fold.Len())
	assert.True(t, fold.Has("d1"))
	assert.Equal(t, []string{"D1", "d2"}, fold.Duplicates())
}

func TestConnectAllRights(t *testing.T) {
	d1 := diversion("D1")
	d2 := diversion("D2")
	d2.AddRight(right("OLD", "D2"))
	rights := []*models.DiversionRight{
		right("R1", "D1"),
		right("R2", "d1"),
		right("R3", "D2"),
		right("R4", "NOPE"),
		nil,
	}

	orphans := ConnectAllRights([]*models.Diversion{d1, d2}, rights)
	require.Len(t, orphans, 1)
	assert.Equal(t, "R4", orphans[0].ID())
	assert.Len(t, d1.Rights(), 2)
	require.Len(t, d2.Rights(), 1)
	assert.Equal(t, "R3", d2.LastRight().ID())
}

func TestUnresolvedReferences(t *testing.T) {
	tables := []*models.DelayTable{table("1"), table("3")}
	divs := []*models.Diversion{diversion("D1", 1, 2), diversion("D2", 3)}

	refs := UnresolvedReturnFlows(divs, tables)
	assert.Equal(t, []Reference{{OwnerID: "D1", TargetID: "2", Position: 1}}, refs)

	ix := New(tables)
	dt, ok := DelayTable(ix, divs[1].ReturnFlow(0))
	require.True(t, ok)
	assert.Equal(t, "3", dt.TableID())

	a := models.NewDelayTableAssignment()
	a.SetID("LOC1")
	a.SetNumDelayTables(2)
	a.SetDelayTableID("1", 0)
	a.SetDelayTableID("9", 1)
	refs = UnresolvedAssignments([]*models.DelayTableAssignment{a}, tables)
	assert.Equal(t, []Reference{{OwnerID: "LOC1", TargetID: "9", Position: 1}}, refs)
}
