package statemod

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iudanet/statemod/internal/listfile"
	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiversionListFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diversions.txt")

	in := sampleDiversions()
	in[0].SetName("Upper, Ditch")
	in[0].SetCollection(models.NewCollection(models.CollectionAggregate, []string{"P1", "P2"}))
	require.NoError(t, WriteDiversionListFile(path, in, ListOptions{Header: testHeader()}))

	for _, side := range []string{"diversions_ReturnFlows.txt", "diversions_Collections.txt"} {
		_, err := os.Stat(filepath.Join(dir, side))
		require.NoError(t, err, side)
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ID","Name","RiverNodeID","OnOff"`)
	assert.Contains(t, string(data), `D1,"Upper, Ditch",N1,1,12.5,-1,0,Smith,1,-60,320,1,2,50,51,`)

	rf, err := os.ReadFile(filepath.Join(dir, "diversions_ReturnFlows.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(rf), "D1,N2,60,3\n")
	assert.Contains(t, string(rf), "D1,N3,40,1\n")

	ds := models.NewDataSet()
	got, err := ReadDiversionListFile(path, ListOptions{}, Options{DataSet: ds})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]), in[i].ID())
	}
	assert.Equal(t, "Upper, Ditch", got[0].Name())
	require.Equal(t, 2, got[0].Nrtn())
	assert.Equal(t, 60.0, got[0].ReturnFlow(0).Pcttot())
	require.True(t, got[0].IsCollection())
	assert.Equal(t, models.CollectionAggregate, got[0].Collection().Type)
	assert.Equal(t, []string{"P1", "P2"}, got[0].Collection().PartIDs(2000))
	assert.False(t, got[1].IsCollection())
	assert.False(t, ds.IsDirtyAny())
	assert.Same(t, ds, got[0].ReturnFlow(1).DataSet())
}

func TestDiversionListFile_NoSideFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.csv")
	require.NoError(t, listfile.Write(path, []string{"ID", "Name", "Capacity"}, [][]string{{"X1", "Only", "4"}}, listfile.Options{}))

	got, err := ReadDiversionListFile(path, ListOptions{}, Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4.0, got[0].Divcap())
	assert.Equal(t, 0, got[0].Nrtn())
	// Отсутствующие поля остаются по умолчанию
	assert.Equal(t, -60.0, got[0].Divefc())
}

func TestDelayTableListFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dly.txt")
	in := []*models.DelayTable{delayTable("1", 60, 40), delayTable("2", 100)}
	require.NoError(t, WriteDelayTableListFile(path, in, ListOptions{Delimiter: "|"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DelayTableID"|"Date"|"ReturnAmount"`)
	assert.Contains(t, string(data), "1|2|40\n")

	got, err := ReadDelayTableListFile(path, ListOptions{Delimiter: "|"}, DelayTableOptions{Monthly: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
	}
}

func TestPlanListFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.txt")
	in := samplePlans()
	require.NoError(t, WritePlanListFile(path, in, ListOptions{}))

	got, err := ReadPlanListFile(path, ListOptions{}, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
	}
}

func TestRightListFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rights.txt")
	in := sampleRights()
	require.NoError(t, WriteDiversionRightListFile(path, in, ListOptions{}))

	got, err := ReadDiversionRightListFile(path, ListOptions{}, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "30000.00000", got[0].AdminNumber())
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
	}
}

func TestListFile_ReadErrors(t *testing.T) {
	_, err := ReadPlanListFile(filepath.Join(t.TempDir(), "none.txt"), ListOptions{}, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("# c\n", 3)), 0o600))
	_, err = ReadDelayTableListFile(path, ListOptions{}, DelayTableOptions{})
	assert.ErrorIs(t, err, listfile.ErrMissingHeader)
}
