package statemod

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlans() []*models.Plan {
	p1 := models.NewPlan(true)
	p1.SetID("PLAN1")
	p1.SetName("Augmentation plan")
	p1.SetCgoto("N1")
	p1.SetPlanType(2)
	p1.SetPeff(75.5)
	p1.SetIPrf(4)
	p1.SetIPfail(1)
	p1.SetPsto1(1200)
	p1.SetPsource("D1")

	p2 := models.NewPlan(true)
	p2.SetID("PLAN2")
	p2.SetName("TandC")
	p2.SetCgoto("N2")
	return []*models.Plan{p1, p2}
}

func TestEncodePlans_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePlans(&buf, samplePlans(), Options{}))
	lines := dataLines(t, buf.String())
	require.Len(t, lines, 2)

	assert.Equal(t, "PLAN1"+sp(7)+" "+`"Augmentation plan"`+sp(5)+" N1"+sp(10)+
		"        1        2   75.50        4        1  1200.00 D1"+sp(10), lines[0])
	// Пустой источник записывается в кавычках
	assert.True(t, strings.HasSuffix(lines[1], ` ""`+sp(10)))
}

func TestPlans_RoundTrip(t *testing.T) {
	in := samplePlans()
	var buf bytes.Buffer
	require.NoError(t, EncodePlans(&buf, in, Options{}))

	ds := models.NewDataSet()
	got, err := ParsePlans(&buf, Options{DataSet: ds})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]), in[i].ID())
		assert.False(t, got[i].IsDirty())
	}
	assert.Equal(t, "Augmentation plan", got[0].Name())
	assert.Equal(t, "", got[1].Psource())
	assert.False(t, ds.IsDirtyAny())
}

func TestParsePlans_ShortLineSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	input := "# plans\nP1 Name N1 1 2 50 999 0\nP2 Name N2 1 3 50.0 999 0 0.0 SRC\n"

	got, err := ParsePlans(strings.NewReader(input), Options{Options: fixedformat.Options{Logger: logger}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].ID())
	assert.Equal(t, 3, got[0].PlanType())
	assert.Contains(t, logs.String(), "not enough data values")
	assert.Contains(t, logs.String(), "line=2")
}

func TestParsePlans_BadNumbersKeepDefaults(t *testing.T) {
	got, err := ParsePlans(strings.NewReader("P1 N R x y z w v u S\n"), Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].PlanType())
	assert.Equal(t, 999.0, got[0].Peff())
	assert.Equal(t, 1, got[0].Switch())
	assert.Equal(t, "S", got[0].Psource())
}

func TestWriteReadPlans_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pln")
	require.NoError(t, WritePlans(path, samplePlans(), Options{Header: testHeader()}))
	got, err := ReadPlans(path, Options{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
