package validation

import (
	"testing"

	"github.com/iudanet/statemod/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{name: "valid id", id: "0100501", wantErr: false},
		{name: "valid id - max length", id: "ABCDEFGHIJKL", wantErr: false},
		{name: "valid id - with dash and underscore", id: "10_ADC-01", wantErr: false},
		{name: "invalid - empty id", id: "", wantErr: true, errMsg: "id cannot be empty"},
		{name: "invalid - too long (13 chars)", id: "ABCDEFGHIJKLM", wantErr: true, errMsg: "must not exceed 12 characters"},
		{name: "invalid - with space", id: "AB CD", wantErr: true, errMsg: "cannot contain whitespace"},
		{name: "invalid - with quote", id: `AB"CD`, wantErr: true, errMsg: "cannot contain whitespace or quotes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSwitch(t *testing.T) {
	require.NoError(t, ValidateSwitch(0))
	require.NoError(t, ValidateSwitch(1))

	err := ValidateSwitch(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "switch must be one of 0, 1")
}

func newDiversion(id string) *models.Diversion {
	d := models.NewDiversion(true)
	d.SetID(id)
	d.SetCgoto("NODE1")
	d.SetDivcap(10)
	return d
}

func fields(ps []Problem) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID + "/" + p.Field
	}
	return out
}

func TestCheckDiversions(t *testing.T) {
	good := newDiversion("D1")
	rf := models.NewReturnFlow(models.CompDiversionStations)
	rf.SetCrtnid("NODE2")
	good.AddReturnFlow(rf)

	bad := newDiversion("D2")
	bad.SetSwitch(5)
	bad.SetCgoto("")
	bad.SetDivcap(-1)
	bad.SetIdvcom(9)
	bad.SetDiveff(2, 120)
	half := models.NewReturnFlow(models.CompDiversionStations)
	half.SetPcttot(50)
	bad.AddReturnFlow(half)

	// Отсутствующие значения не считаются ошибкой
	missing := models.NewDiversion(false)
	missing.SetID("D3")
	missing.SetCgoto("NODE1")

	ps := CheckDiversions([]*models.Diversion{good, bad, missing, newDiversion("D1")})
	assert.Equal(t, []string{
		"D1/ID",
		"D2/Switch",
		"D2/DemandType",
		"D2/RiverNodeID",
		"D2/Capacity",
		"D2/EffMonthly03",
		"D2/ReturnFlow",
		"D2/ReturnFlow",
	}, fields(ps))
	assert.Equal(t, "D1: ID: duplicate id", ps[0].String())
}

func TestCheckDiversions_AnnualEfficiency(t *testing.T) {
	d := newDiversion("D1")
	d.SetDivefc(150)
	ps := CheckDiversions([]*models.Diversion{d})
	require.Len(t, ps, 1)
	assert.Equal(t, "EffAnnual", ps[0].Field)
}

func TestCheckDelayTables(t *testing.T) {
	pct := models.NewDelayTable(true)
	pct.SetTableID("1")
	pct.SetValues([]float64{60, 39.995})

	frac := models.NewDelayTable(true)
	frac.SetTableID("2")
	frac.SetUnits(models.UnitsFraction)
	frac.SetValues([]float64{0.5, 0.4})

	empty := models.NewDelayTable(true)
	empty.SetTableID("3")

	odd := models.NewDelayTable(true)
	odd.SetTableID("4")
	odd.SetUnits("CFS")
	odd.SetValues([]float64{1})

	ps := CheckDelayTables([]*models.DelayTable{pct, frac, empty, odd})
	assert.Equal(t, []string{"2/ReturnAmount", "3/ReturnAmount", "4/Units"}, fields(ps))
	assert.Contains(t, ps[0].Message, "expecting 1")
}

func TestCheckAssignments(t *testing.T) {
	ok := models.NewDelayTableAssignment()
	ok.SetID("LOC1")
	ok.SetNumDelayTables(2)
	ok.SetDelayTableID("1", 0)
	ok.SetDelayTablePercent(60, 0)
	ok.SetDelayTableID("2", 1)
	ok.SetDelayTablePercent(40, 1)

	short := models.NewDelayTableAssignment()
	short.SetID("LOC2")
	short.SetNumDelayTables(1)
	short.SetDelayTablePercent(90, 0)

	none := models.NewDelayTableAssignment()
	none.SetID("LOC3")

	ps := CheckAssignments([]*models.DelayTableAssignment{ok, short, none})
	assert.Equal(t, []string{"LOC2/DelayTableID", "LOC2/Percent", "LOC3/DelayTableID"}, fields(ps))
}

func TestCheckPlans(t *testing.T) {
	ok := models.NewPlan(true)
	ok.SetID("PLAN1")

	bad := models.NewPlan(true)
	bad.SetID("PLAN 2")
	bad.SetPlanType(10)
	bad.SetIPfail(3)

	ps := CheckPlans([]*models.Plan{ok, bad})
	assert.Equal(t, []string{"PLAN 2/ID", "PLAN 2/PlanType", "PLAN 2/FailureSwitch"}, fields(ps))
}

func TestCheckRights(t *testing.T) {
	ok := models.NewDiversionRight()
	ok.SetID("R1")
	ok.SetCgoto("D1")
	ok.SetDecree(2.5)

	bad := models.NewDiversionRight()
	bad.SetID("R2")
	bad.SetDecree(-1)
	bad.SetAdminNumber("abc")

	ps := CheckRights([]*models.DiversionRight{ok, bad})
	assert.Equal(t, []string{"R2/StructureID", "R2/Decree", "R2/AdministrationNumber"}, fields(ps))
}

func TestCheckClimateStations(t *testing.T) {
	ok := models.NewClimateStation()
	ok.SetID("USC0001")

	bad := models.NewClimateStation()
	bad.SetID("USC0002")
	bad.SetLatitude(95)

	ps := CheckClimateStations([]*models.ClimateStation{ok, bad, ok})
	assert.Equal(t, []string{"USC0001/ID", "USC0002/Latitude"}, fields(ps))
}
