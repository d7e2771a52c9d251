package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidKey is returned by ParseKey for strings that are not day/month/year keys.
var ErrInvalidKey = errors.New("calendar: invalid date key")

// Date is a civil date without time of day or location. Being a plain value it
// compares with == and can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalises overflowing months and days the way time.Date does, so
// NewDate(2024, 13, 1) is 1 January 2025.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day t falls on in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday of d in the proleptic Gregorian calendar.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// YearDay returns the ordinal day of the year, 1..365 (366 in leap years).
func (d Date) YearDay() int {
	return d.Time(time.UTC).YearDay()
}

// AddDays returns d shifted by n days across month and year boundaries.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// AddMonths shifts the month, keeping the day where possible. Days beyond the
// end of the target month are clamped, so 31 January + 1 month is 28/29 February.
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.Year, d.Month+time.Month(n), 1)
	day := min(d.Day, DaysIn(first.Year, first.Month))
	return Date{Year: first.Year, Month: first.Month, Day: day}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Key is the day/month/year string used by external event buckets.
func (d Date) Key() string {
	return DateKey(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsSameDay reports whether a and b share the year and the day of the year.
func IsSameDay(a, b Date) bool {
	return a.Year == b.Year && a.YearDay() == b.YearDay()
}

// DateKey formats d as "{day}/{month}/{year}" without zero padding,
// e.g. "3/3/2024".
func DateKey(d Date) string {
	return strconv.Itoa(d.Day) + "/" + strconv.Itoa(int(d.Month)) + "/" + strconv.Itoa(d.Year)
}

// ParseKey parses a day/month/year key. Zero-padded parts are accepted and
// normalised, so ParseKey("03/03/2024").Key() == "3/3/2024".
func ParseKey(key string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(key), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, time.Month(month)) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// IsLeap applies the Gregorian rule: divisible by 4, except centuries that
// are not divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
