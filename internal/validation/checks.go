package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iudanet/statemod/internal/index"
	"github.com/iudanet/statemod/internal/models"
)

const (
	// PercentTolerance допуск суммы процентов
	PercentTolerance = 0.01
	// FractionTolerance допуск суммы долей
	FractionTolerance = 0.0001
)

// Problem одна найденная проблема в данных
type Problem struct {
	ID      string
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.ID, p.Field, p.Message)
}

type problems []Problem

func (ps *problems) add(id, field, format string, args ...any) {
	*ps = append(*ps, Problem{ID: id, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (ps *problems) addErr(id, field string, err error) {
	if err != nil {
		ps.add(id, field, "%s", err.Error())
	}
}

// choice проверяет вариант; отсутствующее значение не проверяется
func (ps *problems) choice(id, field, label string, v int, options []string) {
	if v != models.MissingInt {
		ps.addErr(id, field, validateChoice(label, v, options))
	}
}

func (ps *problems) duplicates(ids []string) {
	for _, id := range ids {
		ps.add(id, "ID", "duplicate id")
	}
}

// CheckDiversions проверяет станции отвода
func CheckDiversions(divs []*models.Diversion) []Problem {
	var ps problems
	ps.duplicates(index.New(divs).Duplicates())

	for _, d := range divs {
		id := d.ID()
		ps.addErr(id, "ID", ValidateID(id))
		ps.addErr(id, "Switch", ValidateSwitch(d.Switch()))
		ps.choice(id, "DemandType", "demand type", d.Idvcom(), models.DemandTypeChoices(false))
		ps.choice(id, "UseType", "use type", d.Irturn(), models.UseTypeChoices(false))
		ps.choice(id, "DemandSource", "demand source", d.Demsrc(), models.DemandSourceChoices(false))
		if d.Cgoto() == "" {
			ps.add(id, "RiverNodeID", "river node id is empty")
		}
		if d.Divcap() < 0 && d.Divcap() != models.MissingDouble {
			ps.add(id, "Capacity", "capacity is negative: %g", d.Divcap())
		}

		switch {
		case d.Divefc() == models.MissingDouble:
		case d.Divefc() < 0:
			for i := range 12 {
				if e := d.Diveff(i); e < 0 || e > 100 {
					ps.add(id, fmt.Sprintf("EffMonthly%02d", i+1), "efficiency must be in 0-100, got %g", e)
				}
			}
		case d.Divefc() > 100:
			ps.add(id, "EffAnnual", "efficiency must be in 0-100, got %g", d.Divefc())
		}

		if d.Nrtn() == 0 {
			continue
		}
		total := 0.0
		for i, rf := range d.ReturnFlows() {
			if rf.Crtnid() == "" {
				ps.add(id, "ReturnFlow", "return flow %d has no river node id", i+1)
			}
			total += rf.Pcttot()
		}
		if math.Abs(total-100) > PercentTolerance {
			ps.add(id, "ReturnFlow", "return flow percents add to %g, expecting 100", total)
		}
	}
	return ps
}

// CheckDelayTables проверяет таблицы задержек
func CheckDelayTables(tables []*models.DelayTable) []Problem {
	var ps problems
	ps.duplicates(index.New(tables).Duplicates())

	for _, t := range tables {
		id := t.TableID()
		if id == "" {
			ps.add(id, "DelayTableID", "delay table id is empty")
		}
		if t.Ndly() == 0 {
			ps.add(id, "ReturnAmount", "delay table has no values")
			continue
		}

		want, tol := 100.0, PercentTolerance
		switch t.Units() {
		case models.UnitsPercent:
		case models.UnitsFraction:
			want, tol = 1, FractionTolerance
		default:
			ps.add(id, "Units", "unknown units %q", t.Units())
			continue
		}
		if sum := t.Sum(); math.Abs(sum-want) > tol {
			ps.add(id, "ReturnAmount", "values add to %g, expecting %g", sum, want)
		}
	}
	return ps
}

// CheckAssignments проверяет назначения таблиц задержек
func CheckAssignments(dlas []*models.DelayTableAssignment) []Problem {
	var ps problems
	ps.duplicates(index.New(dlas).Duplicates())

	for _, a := range dlas {
		id := a.ID()
		ps.addErr(id, "ID", ValidateID(id))
		if a.NumDelayTables() == 0 {
			ps.add(id, "DelayTableID", "no delay tables assigned")
			continue
		}
		for i := range a.NumDelayTables() {
			if a.DelayTableID(i) == "" {
				ps.add(id, "DelayTableID", "delay table %d has no id", i+1)
			}
		}
		if total := a.TotalPercent(); math.Abs(total-100) > PercentTolerance {
			ps.add(id, "Percent", "percents add to %g, expecting 100", total)
		}
	}
	return ps
}

// CheckPlans проверяет планы
func CheckPlans(plans []*models.Plan) []Problem {
	var ps problems
	ps.duplicates(index.New(plans).Duplicates())

	for _, p := range plans {
		id := p.ID()
		ps.addErr(id, "ID", ValidateID(id))
		ps.addErr(id, "Switch", ValidateSwitch(p.Switch()))
		ps.choice(id, "PlanType", "plan type", p.PlanType(), models.PlanTypeChoices(false))
		ps.choice(id, "FailureSwitch", "failure switch", p.IPfail(), models.PlanFailChoices(false))
	}
	return ps
}

// CheckRights проверяет права на отвод
func CheckRights(rights []*models.DiversionRight) []Problem {
	var ps problems
	ps.duplicates(index.New(rights).Duplicates())

	for _, r := range rights {
		id := r.ID()
		ps.addErr(id, "ID", ValidateID(id))
		ps.addErr(id, "OnOff", ValidateSwitch(r.Switch()))
		if r.Cgoto() == "" {
			ps.add(id, "StructureID", "structure id is empty")
		}
		if r.Decree() < 0 && r.Decree() != models.MissingDouble {
			ps.add(id, "Decree", "decree is negative: %g", r.Decree())
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(r.AdminNumber()), 64); err != nil {
			ps.add(id, "AdministrationNumber", "administration number %q is not a number", r.AdminNumber())
		}
	}
	return ps
}

// CheckClimateStations проверяет климатические станции
func CheckClimateStations(stations []*models.ClimateStation) []Problem {
	var ps problems
	ps.duplicates(index.New(stations).Duplicates())

	for _, c := range stations {
		id := c.ID()
		ps.addErr(id, "ID", ValidateID(id))
		if lat := c.Latitude(); lat != models.MissingDouble && (lat < -90 || lat > 90) {
			ps.add(id, "Latitude", "latitude must be in -90..90, got %g", lat)
		}
	}
	return ps
}
