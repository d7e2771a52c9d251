package calendar

import (
	"fmt"
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
)

// Year range supported by the lunar calendar library. Days outside it are
// still laid out, just without lunar metadata.
const (
	MinLunarYear = 1900
	MaxLunarYear = 3000
)

// ViewMode indicates which view should be displayed.
type ViewMode int

const (
	ModeMonth ViewMode = iota
	ModeWeek
	ModeYear
)

// Request captures the year/month/mode that should be rendered.
type Request struct {
	Year  int
	Month int
	Mode  ViewMode
}

// Normalize keeps the month within 1..12 by rolling the year value.
func (r Request) Normalize() Request {
	for r.Month > 12 {
		r.Month -= 12
		r.Year++
	}
	for r.Month < 1 {
		r.Month += 12
		r.Year--
	}
	return r
}

// EventIndex answers whether a day has at least one event.
type EventIndex interface {
	Has(d Date) bool
}

// MonthView describes a month laid out into weeks.
type MonthView struct {
	Year  int
	Month time.Month
	Title string
	Weeks [][]Cell
}

// WeekView is the 7-day strip around a reference date.
type WeekView struct {
	Title string
	Days  []Cell
}

// Service materialises month, week and year views.
type Service struct {
	now       func() time.Time
	weekStart time.Weekday
	fill      FillPolicy
	lunar     bool
	events    EventIndex
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithWeekStart sets the first column of every grid.
func WithWeekStart(day time.Weekday) Option {
	return func(s *Service) {
		s.weekStart = day
	}
}

// WithFill selects how days outside the displayed month are shown.
func WithFill(fill FillPolicy) Option {
	return func(s *Service) {
		s.fill = fill
	}
}

// WithLunar toggles lunar calendar labels.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// WithEvents sets the index used to flag days that have events.
func WithEvents(events EventIndex) Option {
	return func(s *Service) {
		s.events = events
	}
}

// NewService constructs a Service with Sunday-first adjacent-filled grids.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:       time.Now,
		weekStart: time.Sunday,
		fill:      FillAdjacent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current day according to the service clock.
func (s *Service) Today() Date {
	return DateOf(s.now())
}

// WeekStart returns the configured first day of the week.
func (s *Service) WeekStart() time.Weekday {
	return s.weekStart
}

// HasEventData reports whether an event index is attached.
func (s *Service) HasEventData() bool {
	return s.events != nil
}

// Month builds a MonthView. Out-of-range months roll the year.
func (s *Service) Month(year, month int, selected Date) MonthView {
	first := NewDate(year, time.Month(month), 1)
	cells := BuildMonthGrid(first.Year, first.Month, GridOptions{WeekStart: s.weekStart, Fill: s.fill})
	today := s.Today()
	for i := range cells {
		cells[i] = s.decorate(cells[i], today, selected)
	}
	return MonthView{
		Year:  first.Year,
		Month: first.Month,
		Title: fmt.Sprintf("%s %d", first.Month, first.Year),
		Weeks: Weeks(cells),
	}
}

// Year returns the MonthView list for an entire year.
func (s *Service) Year(year int, selected Date) []MonthView {
	months := make([]MonthView, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, s.Month(year, m, selected))
	}
	return months
}

// Week builds the strip of 7 days containing ref.
func (s *Service) Week(ref, selected Date) WeekView {
	dates := BuildWeek(ref, s.weekStart)
	today := s.Today()
	days := make([]Cell, len(dates))
	for i, d := range dates {
		days[i] = s.decorate(Cell{Date: d, InMonth: d.Month == ref.Month}, today, selected)
	}
	return WeekView{
		Title: fmt.Sprintf("%s %d - %s %d, %d", dates[0].Month.String()[:3], dates[0].Day,
			dates[6].Month.String()[:3], dates[6].Day, dates[6].Year),
		Days: days,
	}
}

func (s *Service) decorate(c Cell, today, selected Date) Cell {
	if c.Blank {
		return c
	}
	c.IsToday = IsSameDay(c.Date, today)
	c.IsSelected = !selected.IsZero() && IsSameDay(c.Date, selected)
	if s.events != nil {
		c.HasEvents = s.events.Has(c.Date)
	}
	if s.lunar {
		c = withLunar(c)
	}
	return c
}

func withLunar(c Cell) Cell {
	d := c.Date
	if d.Year < MinLunarYear || d.Year > MaxLunarYear {
		return c
	}
	cal := calendarlib.BySolar(
		int64(d.Year),
		int64(d.Month),
		int64(d.Day),
		12, 0, 0,
	)
	c.LunarDayAlias = cal.Lunar.DayAlias()
	c.LunarMonthAlias = cal.Lunar.MonthAlias()
	c.hasLunarData = true
	if solarterm := cal.Solar.CurrentSolarterm; solarterm != nil {
		day := d.Time(time.Local)
		if solarterm.IsInDay(&day) {
			c.SolarTerm = solarterm.Alias()
		}
	}
	return c
}
