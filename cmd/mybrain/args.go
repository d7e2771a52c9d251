package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mybrain/mybrain/internal/calendar"
)

// parseRequest interprets the positional [year] [month] arguments. A single
// number outside 1..12 is taken as a year and switches to the year view.
func parseRequest(now time.Time, showYear bool, args []string) (calendar.Request, error) {
	year := now.Year()
	month := int(now.Month())

	switch len(args) {
	case 0:
		// defaults
	case 1:
		if showYear {
			val, err := parseNumber(args[0], "year")
			if err != nil {
				return calendar.Request{}, err
			}
			year = val
		} else {
			val, err := parseNumber(args[0], "month/year")
			if err != nil {
				return calendar.Request{}, err
			}
			if val >= 1 && val <= 12 {
				month = val
			} else {
				year = val
				showYear = true
			}
		}
	case 2:
		if showYear {
			return calendar.Request{}, errors.New("the year view takes a single year argument")
		}
		y, err := parseNumber(args[0], "year")
		if err != nil {
			return calendar.Request{}, err
		}
		m, err := parseNumber(args[1], "month")
		if err != nil {
			return calendar.Request{}, err
		}
		if m < 1 || m > 12 {
			return calendar.Request{}, fmt.Errorf("month must be between 1 and 12 (got %d)", m)
		}
		year = y
		month = m
	default:
		return calendar.Request{}, errors.New("too many arguments, see --help")
	}

	req := calendar.Request{
		Year:  year,
		Month: month,
		Mode:  calendar.ModeMonth,
	}
	if showYear {
		req.Mode = calendar.ModeYear
	}
	return req.Normalize(), nil
}

// parseDay reads an optional "year month day" triple; no arguments means today.
func parseDay(today calendar.Date, args []string) (calendar.Date, error) {
	switch len(args) {
	case 0:
		return today, nil
	case 3:
	default:
		return calendar.Date{}, errors.New("expected no arguments or: year month day")
	}
	var parts [3]int
	for i, field := range []string{"year", "month", "day"} {
		n, err := parseNumber(args[i], field)
		if err != nil {
			return calendar.Date{}, err
		}
		parts[i] = n
	}
	month := time.Month(parts[1])
	if month < time.January || month > time.December {
		return calendar.Date{}, fmt.Errorf("month must be between 1 and 12 (got %d)", parts[1])
	}
	if parts[2] < 1 || parts[2] > calendar.DaysIn(parts[0], month) {
		return calendar.Date{}, fmt.Errorf("day %d does not exist in %s %d", parts[2], month, parts[0])
	}
	return calendar.NewDate(parts[0], month, parts[2]), nil
}

func parseNumber(value string, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as %s", value, field)
	}
	return n, nil
}
