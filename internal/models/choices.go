package models

import "strings"

// choice is a value with a human-readable note, for example "1 - Irrigation".
type choice string

func choices(values []choice, includeNotes bool) []string {
	out := make([]string, len(values))
	for i, c := range values {
		out[i] = c.text(includeNotes)
	}
	return out
}

func (c choice) text(includeNotes bool) string {
	if includeNotes {
		return string(c)
	}
	// Значение это первый токен до пробела
	v, _, _ := strings.Cut(string(c), " ")
	return v
}

// Demand source codes of a diversion (demsrc).
const (
	DemandSourceUnknown      = 0
	DemandSourceGIS          = 1
	DemandSourceTIA          = 2
	DemandSourceGISPrimary   = 3
	DemandSourceTIAPrimary   = 4
	DemandSourceGISSecondary = 5
	DemandSourceMITransbasin = 6
	DemandSourceCarrier      = 7
	DemandSourceUser         = 8
)

var demandSourceChoices = []choice{
	"0 - Irrigated acres source unknown",
	"1 - Irrigated acres from GIS",
	"2 - Irrigated acres from structure file (tia)",
	"3 - Irr. acr. from GIS, primary comp. served by mult. structs",
	"4 - Same as 3 but data from struct. file (tia)",
	"5 - Irr. acr. from GIS, secondary comp. served by mult. structs",
	"6 - Municipal, industrial, or transmountain structure",
	"7 - Carrier structure (no irrigated acres)",
	"8 - Irrigated acres provided by user",
}

// DemandSourceChoices returns the demand source options, optionally with notes.
func DemandSourceChoices(includeNotes bool) []string {
	return choices(demandSourceChoices, includeNotes)
}

// DefaultDemandSource returns the demand source option for new diversions.
func DefaultDemandSource(includeNotes bool) string {
	return demandSourceChoices[0].text(includeNotes)
}

var replacementTypeChoices = []choice{
	"0 - Do not provide replacement res. benefits",
	"1 - Provide 100% replacement",
	"-1 - Provide depletion replacement",
}

// ReplacementTypeChoices returns the reservoir replacement options (ireptype).
func ReplacementTypeChoices(includeNotes bool) []string {
	return choices(replacementTypeChoices, includeNotes)
}

// DefaultReplacementType returns the replacement option for new diversions.
func DefaultReplacementType(includeNotes bool) string {
	return replacementTypeChoices[2].text(includeNotes)
}

var useTypeChoices = []choice{
	"0 - Storage",
	"1 - Irrigation",
	"2 - Municipal",
	"3 - N/A",
	"4 - Transmountain",
	"5 - Other",
}

// UseTypeChoices returns the use type options (irturn).
func UseTypeChoices(includeNotes bool) []string {
	return choices(useTypeChoices, includeNotes)
}

// DefaultUseType returns the use type for new diversions.
func DefaultUseType(includeNotes bool) string {
	return useTypeChoices[1].text(includeNotes)
}

var demandTypeChoices = []choice{
	"1 - Monthly total demand",
	"2 - Annual total demand",
	"3 - Monthly irrigation water requirement",
	"4 - Annual irrigation water requirement",
	"5 - Estimate to be zero",
}

// DemandTypeChoices returns the monthly demand type options (idvcom).
func DemandTypeChoices(includeNotes bool) []string {
	return choices(demandTypeChoices, includeNotes)
}

// DefaultDemandType returns the demand type for new diversions.
func DefaultDemandType(includeNotes bool) string {
	return demandTypeChoices[0].text(includeNotes)
}

var dailyIDChoices = []choice{
	"0 - Use monthly time series to get average daily values",
	"3 - Daily time series are supplied",
	"4 - Daily time series interpolated from midpoints of monthly data",
}

// DailyIDChoices returns the daily id options (cdividy).
func DailyIDChoices(includeNotes bool) []string {
	return choices(dailyIDChoices, includeNotes)
}

// DefaultDailyID returns the daily id option for new diversions.
func DefaultDailyID(includeNotes bool) string {
	return dailyIDChoices[0].text(includeNotes)
}

var switchChoices = []choice{
	"0 - Off",
	"1 - On",
}

// SwitchChoices returns the on/off switch options.
func SwitchChoices(includeNotes bool) []string {
	return choices(switchChoices, includeNotes)
}

// DefaultSwitch returns the switch option for new records.
func DefaultSwitch(includeNotes bool) string {
	return switchChoices[1].text(includeNotes)
}
