package models

import (
	"fmt"
	"strings"
)

// YearType определяет порядок месяцев в данных набора.
type YearType int

const (
	// YearCalendar is January through December.
	YearCalendar YearType = iota
	// YearWater is October through September.
	YearWater
	// YearIrrigation is November through October.
	YearIrrigation
)

func (y YearType) String() string {
	switch y {
	case YearWater:
		return "Water"
	case YearIrrigation:
		return "Irrigation"
	default:
		return "Calendar"
	}
}

// StartMonth returns the calendar month (1-12) that begins the year.
func (y YearType) StartMonth() int {
	switch y {
	case YearWater:
		return 10
	case YearIrrigation:
		return 11
	default:
		return 1
	}
}

// ParseYearType accepts the long names and the CYR/WYR/IYR abbreviations.
// An empty string is treated as calendar year.
func ParseYearType(s string) (YearType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "calendar", "cyr":
		return YearCalendar, nil
	case "water", "wyr":
		return YearWater, nil
	case "irrigation", "iyr":
		return YearIrrigation, nil
	default:
		return YearCalendar, fmt.Errorf("%w: %q", ErrUnknownYearType, s)
	}
}

// CustomMonth converts a calendar month (1-12) to its position (1-12) in the year.
func (y YearType) CustomMonth(calendarMonth int) int {
	m := calendarMonth - y.StartMonth() + 1
	if m <= 0 {
		m += 12
	}
	return m
}

// dataIndex maps a 0-based calendar month index to a 0-based index in year order.
func (y YearType) dataIndex(calendarIndex int) int {
	return y.CustomMonth(calendarIndex+1) - 1
}
