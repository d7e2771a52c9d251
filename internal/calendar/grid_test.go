package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestBuildMonthGridShape(t *testing.T) {
	for year := 1899; year <= 2101; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := BuildMonthGrid(year, month, GridOptions{})
			if len(cells)%7 != 0 || len(cells) < 28 || len(cells) > 42 {
				t.Fatalf("%d-%02d: bad grid length %d", year, month, len(cells))
			}
			body := 0
			for i, c := range cells {
				if c.InMonth {
					body++
					if c.Date.Day != body {
						t.Fatalf("%d-%02d: body out of order at %d", year, month, i)
					}
				}
				prev := NewDate(year, month-1, 1)
				next := NewDate(year, month+1, 1)
				belongs := 0
				for _, ym := range []Date{prev, {Year: year, Month: month}, next} {
					if c.Date.Year == ym.Year && c.Date.Month == ym.Month {
						belongs++
					}
				}
				if belongs != 1 {
					t.Fatalf("%d-%02d: cell %v belongs to %d months", year, month, c.Date, belongs)
				}
				if i > 0 && cells[i-1].Date.AddDays(1) != c.Date {
					t.Fatalf("%d-%02d: cells %d and %d are not consecutive", year, month, i-1, i)
				}
			}
			if body != DaysIn(year, month) {
				t.Fatalf("%d-%02d: body has %d days, want %d", year, month, body, DaysIn(year, month))
			}
			if cells[0].Date.Weekday() != time.Sunday {
				t.Fatalf("%d-%02d: grid starts on %v", year, month, cells[0].Date.Weekday())
			}
		}
	}
}

func TestBuildMonthGridLeapFebruary(t *testing.T) {
	cells := BuildMonthGrid(2024, time.February, GridOptions{})
	// 1 Feb 2024 is a Thursday: 4 leading days, 29 body days, 2 trailing days.
	if len(cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(cells))
	}
	if cells[0].Date != NewDate(2024, time.January, 28) {
		t.Fatalf("expected grid to start 28 Jan, got %v", cells[0].Date)
	}
	if cells[4].Date != NewDate(2024, time.February, 1) || !cells[4].InMonth {
		t.Fatalf("expected 1 Feb at index 4, got %+v", cells[4])
	}
	if cells[32].Date != NewDate(2024, time.February, 29) {
		t.Fatalf("expected 29 Feb at index 32, got %v", cells[32].Date)
	}
	if cells[34].Date != NewDate(2024, time.March, 2) || cells[34].InMonth {
		t.Fatalf("expected trailing 2 Mar, got %+v", cells[34])
	}
}

func TestBuildMonthGridEdges(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
		first Date
	}{
		// 1 Feb 2015 is a Sunday and 28 Feb a Saturday.
		{"exact four weeks", 2015, time.February, 28, NewDate(2015, time.February, 1)},
		// 1 Aug 2020 is a Saturday, 31 days.
		{"six weeks", 2020, time.August, 42, NewDate(2020, time.July, 26)},
		{"december rolls into january", 2023, time.December, 42, NewDate(2023, time.November, 26)},
		{"january reaches back into december", 2022, time.January, 42, NewDate(2021, time.December, 26)},
		{"century non-leap", 1900, time.February, 35, NewDate(1900, time.January, 28)},
		{"month zero is previous december", 2024, 0, 42, NewDate(2023, time.November, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := BuildMonthGrid(tt.year, tt.month, GridOptions{})
			if len(cells) != tt.want {
				t.Fatalf("expected %d cells, got %d", tt.want, len(cells))
			}
			if cells[0].Date != tt.first {
				t.Fatalf("expected first cell %v, got %v", tt.first, cells[0].Date)
			}
		})
	}
}

func TestBuildMonthGridBlankFill(t *testing.T) {
	cells := BuildMonthGrid(2024, time.February, GridOptions{Fill: FillBlank})
	if len(cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(cells))
	}
	for i, c := range cells {
		inBody := i >= 4 && i < 33
		if inBody == c.Blank {
			t.Fatalf("cell %d: blank=%v inBody=%v", i, c.Blank, inBody)
		}
		if c.Blank && !c.Date.IsZero() {
			t.Fatalf("placeholder %d should carry no date", i)
		}
	}
}

func TestBuildMonthGridMondayStart(t *testing.T) {
	// 1 Sep 2024 is a Sunday: six leading days when weeks start on Monday.
	cells := BuildMonthGrid(2024, time.September, GridOptions{WeekStart: time.Monday})
	if cells[0].Date.Weekday() != time.Monday {
		t.Fatalf("expected Monday first, got %v", cells[0].Date.Weekday())
	}
	if cells[6].Date != NewDate(2024, time.September, 1) {
		t.Fatalf("expected 1 Sep at index 6, got %v", cells[6].Date)
	}
	if len(cells)%7 != 0 {
		t.Fatalf("grid length %d not a multiple of 7", len(cells))
	}
}

func TestBuildWeek(t *testing.T) {
	start := NewDate(2023, time.December, 1)
	for i := 0; i < 800; i++ {
		ref := start.AddDays(i)
		week := BuildWeek(ref, time.Sunday)
		if week[0].Weekday() != time.Sunday {
			t.Fatalf("%v: week starts on %v", ref, week[0].Weekday())
		}
		found := false
		for j, d := range week {
			if j > 0 && week[j-1].AddDays(1) != d {
				t.Fatalf("%v: days %d and %d not consecutive", ref, j-1, j)
			}
			if d == ref {
				found = true
			}
		}
		if !found {
			t.Fatalf("%v: reference date missing from week %v", ref, week)
		}
	}
}

func TestBuildWeekAcrossYear(t *testing.T) {
	week := BuildWeek(NewDate(2025, time.January, 1), time.Sunday)
	if week[0] != NewDate(2024, time.December, 29) || week[6] != NewDate(2025, time.January, 4) {
		t.Fatalf("unexpected week %v", week)
	}
}

func TestIsSameDay(t *testing.T) {
	a := NewDate(2024, time.March, 3)
	if !IsSameDay(a, a) {
		t.Fatalf("a date is always the same day as itself")
	}
	if IsSameDay(NewDate(2023, time.March, 4), NewDate(2024, time.March, 4)) {
		t.Fatalf("different years must never be the same day")
	}
	// Day 63 of both years, different calendar dates.
	if IsSameDay(NewDate(2023, time.March, 4), NewDate(2024, time.March, 3)) {
		t.Fatalf("same day-of-year in different years must not match")
	}
	if !IsSameDay(DateOf(time.Date(2024, 3, 3, 23, 59, 0, 0, time.UTC)), a) {
		t.Fatalf("time of day must not matter")
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{NewDate(2024, time.March, 3), "3/3/2024"},
		{NewDate(2023, time.December, 25), "25/12/2023"},
		{NewDate(2025, time.January, 1), "1/1/2025"},
	}
	for _, tt := range tests {
		if got := DateKey(tt.date); got != tt.want {
			t.Fatalf("DateKey(%v)=%q want %q", tt.date, got, tt.want)
		}
		if got := tt.date.Key(); got != tt.want {
			t.Fatalf("Key(%v)=%q want %q", tt.date, got, tt.want)
		}
	}
}

func TestParseKey(t *testing.T) {
	d, err := ParseKey("03/03/2024")
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if d != NewDate(2024, time.March, 3) || d.Key() != "3/3/2024" {
		t.Fatalf("unexpected date %v", d)
	}
	for _, bad := range []string{"", "2024-03-03", "30/2/2024", "1/13/2024", "x/1/2024", "29/2/2023"} {
		if _, err := ParseKey(bad); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("ParseKey(%q): expected ErrInvalidKey, got %v", bad, err)
		}
	}
}

func TestDaysInAndLeap(t *testing.T) {
	tests := []struct {
		year int
		leap bool
	}{
		{1900, false}, {2000, true}, {2023, false}, {2024, true}, {2100, false}, {2400, true},
	}
	for _, tt := range tests {
		if IsLeap(tt.year) != tt.leap {
			t.Fatalf("IsLeap(%d)=%v", tt.year, !tt.leap)
		}
		want := 28
		if tt.leap {
			want = 29
		}
		if got := DaysIn(tt.year, time.February); got != want {
			t.Fatalf("DaysIn(%d, Feb)=%d want %d", tt.year, got, want)
		}
	}
	if DaysIn(2024, time.April) != 30 || DaysIn(2024, time.July) != 31 {
		t.Fatalf("unexpected month lengths")
	}
}

func TestAddMonthsClamps(t *testing.T) {
	if got := NewDate(2024, time.January, 31).AddMonths(1); got != NewDate(2024, time.February, 29) {
		t.Fatalf("expected 29 Feb, got %v", got)
	}
	if got := NewDate(2024, time.December, 15).AddMonths(1); got != NewDate(2025, time.January, 15) {
		t.Fatalf("expected 15 Jan 2025, got %v", got)
	}
}

func TestWeekdaysOrder(t *testing.T) {
	days := Weekdays(time.Monday)
	if days[0] != time.Monday || days[6] != time.Sunday {
		t.Fatalf("unexpected order %v", days)
	}
}
