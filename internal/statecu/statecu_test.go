package statecu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(n int) string { return strings.Repeat(" ", n) }

func dataLines(text string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if !strings.HasPrefix(l, "#") {
			out = append(out, l)
		}
	}
	return out
}

func sampleAssignments() []*models.DelayTableAssignment {
	a := models.NewDelayTableAssignment()
	a.SetID("LOC1")
	a.SetNumDelayTables(2)
	a.SetDelayTableID("1", 0)
	a.SetDelayTablePercent(60, 0)
	a.SetDelayTableID("12", 1)
	a.SetDelayTablePercent(40, 1)

	b := models.NewDelayTableAssignment()
	b.SetID("LOC2")
	b.SetNumDelayTables(1)
	b.SetDelayTableID("7", 0)
	b.SetDelayTablePercent(100, 0)
	return []*models.DelayTableAssignment{a, b}
}

func TestEncodeDelayTableAssignments_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDelayTableAssignments(&buf, sampleAssignments(), Options{}))
	lines := dataLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "LOC1"+sp(8)+" 2   60.00       1   40.00      12", lines[0])
	assert.Equal(t, "LOC2"+sp(8)+" 1  100.00       7", lines[1])
}

func TestDelayTableAssignments_RoundTrip(t *testing.T) {
	in := sampleAssignments()
	path := filepath.Join(t.TempDir(), "test.dla")
	require.NoError(t, WriteDelayTableAssignments(path, in, Options{}))

	ds := models.NewDataSet()
	got, err := ReadDelayTableAssignments(path, Options{DataSet: ds})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
		assert.False(t, got[i].IsDirty())
	}
	assert.Equal(t, "12", got[0].DelayTableID(1))
	assert.False(t, ds.IsDirtyAny())
}

func TestParseDelayTableAssignments_Edges(t *testing.T) {
	t.Run("short line leaves blank pairs", func(t *testing.T) {
		got, err := ParseDelayTableAssignments(strings.NewReader("LOC1         2   60.00       1\n"), Options{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].NumDelayTables())
		assert.Equal(t, "1", got[0].DelayTableID(0))
		assert.Equal(t, "", got[0].DelayTableID(1))
		assert.Equal(t, 0.0, got[0].DelayTablePercent(1))
	})

	t.Run("bad count means no pairs", func(t *testing.T) {
		got, err := ParseDelayTableAssignments(strings.NewReader("LOC1        xx   60.00       1\n"), Options{})
		require.NoError(t, err)
		assert.Equal(t, 0, got[0].NumDelayTables())
	})

	t.Run("bad percent is skipped", func(t *testing.T) {
		got, err := ParseDelayTableAssignments(strings.NewReader("LOC1         1     abc       3\n"), Options{})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got[0].DelayTablePercent(0))
		assert.Equal(t, "3", got[0].DelayTableID(0))
	})

	t.Run("comments only", func(t *testing.T) {
		got, err := ParseDelayTableAssignments(strings.NewReader("#\n\n#>x\n"), Options{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func sampleStations() []*models.ClimateStation {
	c := models.NewClimateStation()
	c.SetID("USC0001")
	c.SetName("Denver Airport")
	c.SetLatitude(39.75)
	c.SetElevation(5280)
	c.SetRegion1("Denver")
	c.SetRegion2("14010001")

	m := models.NewClimateStation()
	m.SetID("USC0002")
	m.SetName("No location")
	return []*models.ClimateStation{c, m}
}

func TestEncodeClimateStations_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeClimateStations(&buf, sampleStations(), Options{}))
	lines := dataLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "USC0001"+sp(5)+" 39.75  5280.00Denver"+sp(14)+"14010001 Denver Airport"+sp(10), lines[0])
	// Пропущенные значения пишутся пробелами
	assert.Equal(t, "USC0002"+sp(5)+sp(15)+sp(20)+sp(8)+" No location"+sp(13), lines[1])
}

func TestClimateStations_RoundTrip(t *testing.T) {
	in := sampleStations()
	path := filepath.Join(t.TempDir(), "test.cli")
	require.NoError(t, WriteClimateStations(path, in, Options{}))

	got, err := ReadClimateStations(path, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
	}
	assert.Equal(t, models.MissingDouble, got[1].Latitude())
}

func TestListFiles_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	dla := filepath.Join(dir, "dla.txt")
	inA := sampleAssignments()
	require.NoError(t, WriteDelayTableAssignmentListFile(dla, inA, ListOptions{}))
	data, err := os.ReadFile(dla)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LOC1,12,40\n")

	gotA, err := ReadDelayTableAssignmentListFile(dla, ListOptions{}, Options{})
	require.NoError(t, err)
	require.Len(t, gotA, 2)
	for i := range inA {
		assert.Equal(t, 0, inA[i].Compare(gotA[i]))
	}

	cli := filepath.Join(dir, "cli.txt")
	inC := sampleStations()
	require.NoError(t, WriteClimateStationListFile(cli, inC, ListOptions{}))
	gotC, err := ReadClimateStationListFile(cli, ListOptions{}, Options{})
	require.NoError(t, err)
	require.Len(t, gotC, 2)
	for i := range inC {
		assert.Equal(t, 0, inC[i].Compare(gotC[i]))
	}
}
