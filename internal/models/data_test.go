package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_SetterIdempotence(t *testing.T) {
	tests := []struct {
		name  string
		apply func(p *Plan)
	}{
		{name: "id", apply: func(p *Plan) { p.SetID(p.ID()) }},
		{name: "name", apply: func(p *Plan) { p.SetName(p.Name()) }},
		{name: "cgoto", apply: func(p *Plan) { p.SetCgoto(p.Cgoto()) }},
		{name: "switch", apply: func(p *Plan) { p.SetSwitch(p.Switch()) }},
		{name: "switch string", apply: func(p *Plan) { p.SetSwitchString("1") }},
		{name: "comment", apply: func(p *Plan) { p.SetComment(p.Comment()) }},
		{name: "utm", apply: func(p *Plan) { p.SetUTM(p.UTM()) }},
		{name: "plan type", apply: func(p *Plan) { p.SetPlanType(p.PlanType()) }},
		{name: "peff", apply: func(p *Plan) { p.SetPeff(p.Peff()) }},
		{name: "psource", apply: func(p *Plan) { p.SetPsource(p.Psource()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataSet()
			p := NewPlan(true)
			p.SetDataSet(ds)

			tt.apply(p)

			assert.False(t, p.IsDirty())
			assert.False(t, ds.IsDirtyAny())
		})
	}
}

func TestData_SetterPropagatesOnce(t *testing.T) {
	ds := NewDataSet()
	p := NewPlan(true)
	p.SetDataSet(ds)

	p.SetName("Plan A")
	p.SetName("Plan B")
	p.SetCgoto("NODE1")

	assert.True(t, p.IsDirty())
	assert.True(t, ds.IsDirty(CompPlans))
	assert.Equal(t, 1, ds.Notifications(CompPlans))
	assert.Equal(t, StateDirty, p.EditState())
}

func TestData_UnboundRecord(t *testing.T) {
	p := NewPlan(true)
	p.SetName("x")
	assert.True(t, p.IsDirty())
	assert.Nil(t, p.DataSet())
}

func TestData_SetUTMPropagatesToGeoView(t *testing.T) {
	ds := NewDataSet()
	p := NewPlan(true)
	p.SetDataSet(ds)

	p.SetUTM(100, 200)

	x, y := p.UTM()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)
	assert.True(t, ds.IsDirty(CompGeoView))
	assert.False(t, ds.IsDirty(CompPlans))
}

func TestData_StringSetters(t *testing.T) {
	p := NewPlan(true)

	p.SetSwitchString(" 0 ")
	assert.Equal(t, 0, p.Switch())

	// Некорректный текст игнорируется
	p.SetSwitchString("abc")
	assert.Equal(t, 0, p.Switch())

	p.SetUTMString("1.5", "2.5")
	x, y := p.UTM()
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 2.5, y)

	p.SetUTMString("bad", "3")
	x, _ = p.UTM()
	assert.Equal(t, 1.5, x)
}

func TestData_Defaults(t *testing.T) {
	p := NewPlan(true)
	x, y := p.UTM()
	assert.Equal(t, MissingDouble, x)
	assert.Equal(t, MissingDouble, y)
	assert.Equal(t, 1, p.Switch())
	assert.Equal(t, StateClean, p.EditState())
}

func TestData_Equals(t *testing.T) {
	ds := NewDataSet()
	a := NewPlan(true)
	b := NewPlan(true)
	a.SetDataSet(ds)
	b.SetDataSet(ds)

	assert.True(t, a.Equals(&b.Data))

	// Комментарий не участвует в сравнении, но помечает запись dirty
	b.SetComment("note")
	b.SetDirty(false)
	assert.True(t, a.Equals(&b.Data))

	// Разные наборы данных: записи не равны, но Compare их не различает
	b.SetDataSet(NewDataSet())
	assert.False(t, a.Equals(&b.Data))
	assert.Equal(t, 0, a.Compare(b))

	assert.False(t, a.Equals(nil))
}

func TestData_CompareBaseOrder(t *testing.T) {
	mk := func(id, name, cgoto string, sw int, x float64) *Plan {
		p := NewPlan(true)
		p.SetID(id)
		p.SetName(name)
		p.SetCgoto(cgoto)
		p.SetSwitch(sw)
		p.SetUTM(x, 0)
		return p
	}

	tests := []struct {
		a, b *Plan
		name string
		want int
	}{
		{name: "id first", a: mk("A", "Z", "Z", 9, 9), b: mk("B", "A", "A", 0, 0), want: -1},
		{name: "name second", a: mk("A", "B", "A", 0, 0), b: mk("A", "A", "Z", 9, 9), want: 1},
		{name: "cgoto third", a: mk("A", "A", "A", 9, 9), b: mk("A", "A", "B", 0, 0), want: -1},
		{name: "switch fourth", a: mk("A", "A", "A", 1, 0), b: mk("A", "A", "A", 0, 9), want: 1},
		{name: "utm x fifth", a: mk("A", "A", "A", 1, 1), b: mk("A", "A", "A", 1, 2), want: -1},
		{name: "equal", a: mk("A", "A", "A", 1, 1), b: mk("A", "A", "A", 1, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestEditState_String(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "dirty", StateDirty.String())
	assert.Equal(t, "editing", StateEditing.String())
	assert.Equal(t, "unknown", EditState(42).String())
}

func TestYearType(t *testing.T) {
	tests := []struct {
		input    string
		want     YearType
		start    int
		january  int
		december int
	}{
		{input: "Calendar", want: YearCalendar, start: 1, january: 1, december: 12},
		{input: "WYR", want: YearWater, start: 10, january: 4, december: 3},
		{input: "irrigation", want: YearIrrigation, start: 11, january: 3, december: 2},
		{input: "", want: YearCalendar, start: 1, january: 1, december: 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			yt, err := ParseYearType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, yt)
			assert.Equal(t, tt.start, yt.StartMonth())
			assert.Equal(t, tt.january, yt.CustomMonth(1))
			assert.Equal(t, tt.december, yt.CustomMonth(12))
		})
	}

	_, err := ParseYearType("fiscal")
	assert.ErrorIs(t, err, ErrUnknownYearType)
}

func TestChoices(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "-1"}, ReplacementTypeChoices(false))
	assert.Equal(t, "-1 - Provide depletion replacement", DefaultReplacementType(true))
	assert.Equal(t, "-1", DefaultReplacementType(false))
	assert.Len(t, DemandSourceChoices(true), 9)
	assert.Equal(t, "0", DefaultDemandSource(false))
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, UseTypeChoices(false))
	assert.Equal(t, "1 - Irrigation", DefaultUseType(true))
	assert.Len(t, DemandTypeChoices(false), 5)
	assert.Equal(t, "1", DefaultDemandType(false))
	assert.Equal(t, []string{"0", "3", "4"}, DailyIDChoices(false))
	assert.Equal(t, "0", DefaultDailyID(false))
	assert.Equal(t, []string{"0 - Off", "1 - On"}, SwitchChoices(true))
	assert.Equal(t, "1", DefaultSwitch(false))
	assert.Len(t, PlanTypeChoices(false), 9)
	assert.Equal(t, "1", DefaultPlanType(false))
	assert.Equal(t, []string{"0", "1"}, PlanFailChoices(false))
	assert.Equal(t, "0 - Do not turn plan off if it fails", DefaultPlanFail(true))
}
