package statemod

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelayTables_Scenario(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		interv int
		units  string
	}{
		{"count inline", "2037 5 50.0 20.0 15.0 10.0 5.00\n", -1, models.UnitsPercent},
		{"fixed count", "2037 50.0 20.0 15.0 10.0 5.00\n", 5, models.UnitsPercent},
		{"fractions", "2037 5 50.0 20.0 15.0 10.0 5.00\n", IntervFraction, models.UnitsFraction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelayTables(strings.NewReader(tt.input), DelayTableOptions{Monthly: true, Interv: tt.interv})
			require.NoError(t, err)
			require.Len(t, got, 1)
			dt := got[0]
			assert.Equal(t, "2037", dt.TableID())
			assert.Equal(t, 5, dt.Ndly())
			assert.Equal(t, []float64{50, 20, 15, 10, 5}, dt.Values())
			assert.Equal(t, tt.units, dt.Units())
			assert.True(t, dt.IsMonthly())
			assert.False(t, dt.IsDirty())
		})
	}
}

func TestParseDelayTables_Continuation(t *testing.T) {
	input := strings.Join([]string{
		"# delay tables",
		"       1  15    1.00    2.00    3.00    4.00    5.00    6.00    7.00    8.00    9.00   10.00   11.00   12.00",
		"# comment between continuation lines",
		"               13.00   14.00   15.00",
		"       2   2   60.00   40.00",
		"",
	}, "\n")
	ds := models.NewDataSet()
	got, err := ParseDelayTables(strings.NewReader(input), DelayTableOptions{
		Options: Options{DataSet: ds},
		Interv:  -1,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 15, got[0].Ndly())
	for i := range 15 {
		assert.Equal(t, float64(i+1), got[0].Value(i))
	}
	assert.Equal(t, []float64{60, 40}, got[1].Values())
	assert.False(t, got[1].IsMonthly())
	assert.Same(t, ds, got[1].DataSet())
	assert.False(t, ds.IsDirtyAny())
}

// TestParseDelayTables_Edges covers blank input, short tables and bad values.
// A file that ends inside a table is rejected with ErrUnexpectedEOF; older
// StateMod readers kept the partial table and stopped without an error.
func TestParseDelayTables_Edges(t *testing.T) {
	t.Run("comment only", func(t *testing.T) {
		got, err := ParseDelayTables(strings.NewReader("#\n  # indented\n\n"), DelayTableOptions{Interv: -1})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("end of file inside a table is an error", func(t *testing.T) {
		// объявлено 4 значения, в файле только 2: частичная таблица не возвращается
		_, err := ParseDelayTables(strings.NewReader("1 4 10 20\n"), DelayTableOptions{Interv: -1})
		assert.ErrorIs(t, err, fixedformat.ErrUnexpectedEOF)
	})

	t.Run("malformed value still counts", func(t *testing.T) {
		got, err := ParseDelayTables(strings.NewReader("1 3 10 x 90\n2 1 100\n"), DelayTableOptions{Interv: -1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []float64{10, 90}, got[0].Values())
		assert.Equal(t, "2", got[1].TableID())
	})

	t.Run("empty table", func(t *testing.T) {
		got, err := ParseDelayTables(strings.NewReader("1 0\n2 1 100\n"), DelayTableOptions{Interv: -1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].Ndly())
	})
}

func delayTable(id string, values ...float64) *models.DelayTable {
	dt := models.NewDelayTable(true)
	dt.SetTableID(id)
	dt.SetValues(values)
	return dt
}

func TestEncodeDelayTables_Format(t *testing.T) {
	fifteen := make([]float64, 15)
	for i := range fifteen {
		fifteen[i] = float64(i + 1)
	}
	tables := []*models.DelayTable{
		delayTable("2037", 50, 20, 15, 10, 5),
		delayTable("9", fifteen...),
	}

	t.Run("count inline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeDelayTables(&buf, tables, DelayTableOptions{Interv: -1, Precision: 2}))
		lines := dataLines(t, buf.String())
		require.Len(t, lines, 3)
		assert.Equal(t, "    2037   5   50.00   20.00   15.00   10.00    5.00", lines[0])
		assert.Equal(t, "       9  15"+
			"    1.00    2.00    3.00    4.00    5.00    6.00    7.00    8.00    9.00   10.00   11.00   12.00", lines[1])
		assert.Equal(t, sp(12)+"   13.00   14.00   15.00", lines[2])
	})

	t.Run("fixed count", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeDelayTables(&buf, tables, DelayTableOptions{Interv: 5, Precision: -1}))
		lines := dataLines(t, buf.String())
		assert.Equal(t, "    2037   50.00   20.00   15.00   10.00    5.00", lines[0])
		assert.Equal(t, sp(8)+"   13.00   14.00   15.00", lines[2])
	})

	t.Run("precision reduced for wide values", func(t *testing.T) {
		var buf bytes.Buffer
		wide := []*models.DelayTable{delayTable("1", 12345.678, 1)}
		require.NoError(t, EncodeDelayTables(&buf, wide, DelayTableOptions{Interv: -1, Precision: 2}))
		lines := dataLines(t, buf.String())
		assert.Equal(t, "       1   2 12345.7    1.00", lines[0])
	})

	t.Run("long id truncated", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeDelayTables(&buf, []*models.DelayTable{delayTable("123456789", 1)}, DelayTableOptions{Interv: 1, Precision: 0}))
		lines := dataLines(t, buf.String())
		assert.Equal(t, "12345678       1", lines[0])
	})
}

func TestDelayTables_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dly")
	in := []*models.DelayTable{
		delayTable("1", 10.25, 20.5, 69.25),
		delayTable("2", 100),
	}
	opts := DelayTableOptions{Options: Options{Header: testHeader()}, Monthly: true, Interv: -1, Precision: 2}
	require.NoError(t, WriteDelayTables(path, in, opts))

	got, err := ReadDelayTables(path, opts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
	}
}
