package calendar

import "time"

// FillPolicy decides what occupies the grid positions outside the displayed month.
type FillPolicy int

const (
	// FillAdjacent shows the real days of the previous and next month.
	FillAdjacent FillPolicy = iota
	// FillBlank pads partial weeks with empty placeholders.
	FillBlank
)

// GridOptions parameterises BuildMonthGrid and BuildWeek.
type GridOptions struct {
	WeekStart time.Weekday
	Fill      FillPolicy
}

// Cell is one position of a 7-column calendar grid.
type Cell struct {
	Date       Date
	Blank      bool
	InMonth    bool
	IsToday    bool
	IsSelected bool
	HasEvents  bool

	LunarDayAlias   string
	LunarMonthAlias string
	SolarTerm       string
	hasLunarData    bool
}

// SecondaryLabel selects the string rendered beneath the Gregorian date.
// Solar terms take precedence, followed by lunar month names on the first
// day of a lunar month.
func (c Cell) SecondaryLabel() string {
	if c.SolarTerm != "" {
		return c.SolarTerm
	}
	if c.LunarDayAlias == "初一" && c.LunarMonthAlias != "" {
		return c.LunarMonthAlias
	}
	return c.LunarDayAlias
}

// HasLunarData reports whether lunar metadata was calculated for the cell.
func (c Cell) HasLunarData() bool {
	return c.hasLunarData
}

// leadingDays is the number of grid positions before d in a week starting on start.
func leadingDays(d Date, start time.Weekday) int {
	return (int(d.Weekday()) - int(start) + 7) % 7
}

// BuildMonthGrid lays out the month as a flat sequence of cells whose length
// is a multiple of 7. Months outside 1..12 roll the year.
func BuildMonthGrid(year int, month time.Month, opts GridOptions) []Cell {
	first := NewDate(year, month, 1)
	days := DaysIn(first.Year, first.Month)
	lead := leadingDays(first, opts.WeekStart)
	trail := (7 - (lead+days)%7) % 7

	cells := make([]Cell, 0, lead+days+trail)
	for i := lead; i > 0; i-- {
		cells = append(cells, fillerCell(first.AddDays(-i), opts.Fill))
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Date:    Date{Year: first.Year, Month: first.Month, Day: day},
			InMonth: true,
		})
	}
	last := Date{Year: first.Year, Month: first.Month, Day: days}
	for i := 1; i <= trail; i++ {
		cells = append(cells, fillerCell(last.AddDays(i), opts.Fill))
	}
	return cells
}

func fillerCell(d Date, fill FillPolicy) Cell {
	if fill == FillBlank {
		return Cell{Blank: true}
	}
	return Cell{Date: d}
}

// BuildWeek returns the 7 consecutive dates of the week containing ref,
// beginning on start.
func BuildWeek(ref Date, start time.Weekday) [7]Date {
	first := ref.AddDays(-leadingDays(ref, start))
	var week [7]Date
	for i := range week {
		week[i] = first.AddDays(i)
	}
	return week
}

// Weeks splits a flat grid into rows of 7.
func Weeks(cells []Cell) [][]Cell {
	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i+7 <= len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// Weekdays returns the weekdays in display order for a week starting on start.
func Weekdays(start time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(start) + i) % 7)
	}
	return out
}
