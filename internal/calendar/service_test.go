package calendar

import (
	"testing"
	"time"
)

type fakeEvents map[Date]bool

func (f fakeEvents) Has(d Date) bool { return f[d] }

func TestMonthGeneratesCompleteWeeks(t *testing.T) {
	now := time.Date(2025, 11, 18, 10, 0, 0, 0, time.Local)
	svc := NewService(WithNow(func() time.Time { return now }))
	view := svc.Month(2025, 11, Date{})
	if view.Month != time.November {
		t.Fatalf("expected November, got %v", view.Month)
	}
	if len(view.Weeks) < 5 {
		t.Fatalf("expected at least 5 weeks, got %d", len(view.Weeks))
	}
	start := view.Weeks[0][0].Date
	if start.Weekday() != time.Sunday {
		t.Fatalf("calendar should start on Sunday, got %v", start.Weekday())
	}
	foundToday := false
	for _, week := range view.Weeks {
		if len(week) != 7 {
			t.Fatalf("week should have 7 days, got %d", len(week))
		}
		for _, day := range week {
			if day.IsToday {
				foundToday = true
				if day.Date.Day != 18 {
					t.Fatalf("expected IsToday on 18th, got %d", day.Date.Day)
				}
			}
		}
	}
	if !foundToday {
		t.Fatalf("expected to flag current day")
	}
}

func TestMonthFlagsSelectedAndEvents(t *testing.T) {
	selected := NewDate(2024, time.March, 3)
	svc := NewService(
		WithNow(func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) }),
		WithEvents(fakeEvents{NewDate(2024, time.March, 13): true, NewDate(2024, time.April, 1): true}),
	)
	view := svc.Month(2024, 3, selected)

	var selectedCount int
	withEvents := map[Date]bool{}
	for _, week := range view.Weeks {
		for _, c := range week {
			if c.IsSelected {
				selectedCount++
				if c.Date != selected {
					t.Fatalf("unexpected selected cell %v", c.Date)
				}
			}
			if c.HasEvents {
				withEvents[c.Date] = true
			}
		}
	}
	if selectedCount != 1 {
		t.Fatalf("expected exactly one selected cell, got %d", selectedCount)
	}
	if !withEvents[NewDate(2024, time.March, 13)] {
		t.Fatalf("expected 13 March to carry an event marker")
	}
	if withEvents[NewDate(2024, time.March, 3)] {
		t.Fatalf("3 March must not match the 13 March bucket")
	}
	if !withEvents[NewDate(2024, time.April, 1)] {
		t.Fatalf("expected trailing filler day 1 April to carry an event marker")
	}
}

func TestMonthRollsOverflowingMonth(t *testing.T) {
	svc := NewService()
	view := svc.Month(2023, 13, Date{})
	if view.Year != 2024 || view.Month != time.January {
		t.Fatalf("expected January 2024, got %v %d", view.Month, view.Year)
	}
	if view.Title != "January 2024" {
		t.Fatalf("unexpected title %q", view.Title)
	}
}

func TestMonthWithBlankFill(t *testing.T) {
	svc := NewService(WithFill(FillBlank))
	view := svc.Month(2024, 2, Date{})
	for _, week := range view.Weeks {
		for _, c := range week {
			if !c.InMonth && !c.Blank {
				t.Fatalf("expected blank placeholder outside the month, got %v", c.Date)
			}
		}
	}
}

func TestLunarLabels(t *testing.T) {
	svc := NewService(WithLunar(true))
	view := svc.Month(2025, 11, Date{})
	found := false
	for _, week := range view.Weeks {
		for _, c := range week {
			if c.HasLunarData() && c.SecondaryLabel() != "" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected lunar labels when lunar option is enabled")
	}

	plain := NewService().Month(2025, 11, Date{})
	if plain.Weeks[1][1].HasLunarData() {
		t.Fatalf("lunar data should be absent by default")
	}
}

func TestWeekViewMondayStart(t *testing.T) {
	svc := NewService(WithWeekStart(time.Monday))
	ref := NewDate(2024, time.March, 3) // Sunday
	view := svc.Week(ref, ref)
	if len(view.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(view.Days))
	}
	if view.Days[0].Date != NewDate(2024, time.February, 26) {
		t.Fatalf("expected week to start Monday 26 Feb, got %v", view.Days[0].Date)
	}
	if !view.Days[6].IsSelected {
		t.Fatalf("expected Sunday to be the selected last column")
	}
	if view.Days[0].InMonth {
		t.Fatalf("February day should not be flagged as in the reference month")
	}
	if view.Title != "Feb 26 - Mar 3, 2024" {
		t.Fatalf("unexpected title %q", view.Title)
	}
}

func TestYearLoadsAllMonths(t *testing.T) {
	months := NewService().Year(2024, Date{})
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	for i, m := range months {
		if m.Month != time.Month(i+1) {
			t.Fatalf("month %d out of order: %v", i, m.Month)
		}
	}
}

func TestRequestNormalize(t *testing.T) {
	tests := []struct {
		in   Request
		want Request
	}{
		{Request{Year: 2024, Month: 13}, Request{Year: 2025, Month: 1}},
		{Request{Year: 2024, Month: 0}, Request{Year: 2023, Month: 12}},
		{Request{Year: 2024, Month: -13}, Request{Year: 2022, Month: 11}},
		{Request{Year: 2024, Month: 6, Mode: ModeYear}, Request{Year: 2024, Month: 6, Mode: ModeYear}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Fatalf("Normalize(%+v)=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}
