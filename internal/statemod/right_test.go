package statemod

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRights() []*models.DiversionRight {
	r1 := models.NewDiversionRight()
	r1.SetID("D1.01")
	r1.SetName("Upper Ditch right 1")
	r1.SetCgoto("D1")
	r1.SetAdminNumber("30000.00000")
	r1.SetDecree(10.5)

	r2 := models.NewDiversionRight()
	r2.SetID("D1.02")
	r2.SetCgoto("d1")
	r2.SetDecree(2)
	r2.SetSwitch(0)
	return []*models.DiversionRight{r1, r2}
}

func TestEncodeDiversionRights_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDiversionRights(&buf, sampleRights(), Options{}))
	lines := dataLines(t, buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "D1.01"+sp(7)+"Upper Ditch right 1"+sp(5)+"D1"+sp(10)+
		"     30000.00000   10.50       1", lines[0])
}

func TestDiversionRights_RoundTrip(t *testing.T) {
	in := sampleRights()
	var buf bytes.Buffer
	require.NoError(t, EncodeDiversionRights(&buf, in, Options{}))

	got, err := ParseDiversionRights(strings.NewReader(buf.String()), Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, 0, in[i].Compare(got[i]))
		assert.False(t, got[i].IsDirty())
	}

	// Права подключаются к диверсии без учёта регистра
	d := models.NewDiversion(true)
	d.SetID("D1")
	d.ConnectRights(got)
	assert.Len(t, d.Rights(), 2)
}
