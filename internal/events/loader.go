package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/mybrain/mybrain/internal/calendar"
)

// ErrUnsupportedFormat is returned for files that are neither .ics nor .json.
var ErrUnsupportedFormat = errors.New("events: unsupported file format")

// LoadFromFile loads events from an iCalendar (.ics) file or a legacy JSON
// map of "day/month/year" keys to event lists.
func LoadFromFile(path string, loc *time.Location) (Buckets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		return DecodeICS(f, loc)
	case ".json":
		return DecodeLegacyJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// DecodeICS reads every VEVENT of every calendar in r. Timed events are
// bucketed by their start day in loc; all-day events by their date.
func DecodeICS(r io.Reader, loc *time.Location) (Buckets, error) {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(Buckets)
	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse iCalendar data: %w", err)
		}
		for _, ev := range cal.Events() {
			event, err := fromICal(ev, loc)
			if err != nil {
				slog.Warn("skipping calendar event", slog.String("error", err.Error()))
				continue
			}
			buckets.Add(event)
		}
	}
	return buckets, nil
}

func fromICal(ev ical.Event, loc *time.Location) (Event, error) {
	start, err := ev.DateTimeStart(loc)
	if err != nil {
		return Event{}, fmt.Errorf("event start: %w", err)
	}
	end, err := ev.DateTimeEnd(loc)
	if err != nil || end.IsZero() {
		end = start
	}
	uid, _ := ev.Props.Text(ical.PropUID)
	title, _ := ev.Props.Text(ical.PropSummary)
	location, _ := ev.Props.Text(ical.PropLocation)

	allDay := false
	if prop := ev.Props.Get(ical.PropDateTimeStart); prop != nil && prop.ValueType() == ical.ValueDate {
		allDay = true
		d := calendar.DateOf(start)
		start = d.Time(loc)
		end = calendar.DateOf(end).Time(loc)
	}
	return Event{
		UID:      uid,
		Title:    title,
		Location: location,
		Start:    start.In(loc),
		End:      end.In(loc),
		AllDay:   allDay,
	}, nil
}

// DecodeLegacyJSON converts a string-keyed bucket map into Buckets. Keys are
// parsed with calendar.ParseKey, so zero-padded keys land on the right day.
// Keys that do not parse are logged and dropped.
func DecodeLegacyJSON(r io.Reader) (Buckets, error) {
	var legacy map[string][]Event
	if err := json.NewDecoder(r).Decode(&legacy); err != nil {
		return nil, fmt.Errorf("failed to parse events JSON: %w", err)
	}
	buckets := make(Buckets, len(legacy))
	for key, list := range legacy {
		day, err := calendar.ParseKey(key)
		if err != nil {
			slog.Warn("dropping event bucket", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		for _, e := range list {
			if e.Start.IsZero() {
				e.Start = day.Time(time.Local)
				e.AllDay = true
			}
			if calendar.DateOf(e.Start) != day {
				e.Start = time.Date(day.Year, day.Month, day.Day,
					e.Start.Hour(), e.Start.Minute(), 0, 0, e.Start.Location())
			}
			buckets.Add(e)
		}
	}
	return buckets, nil
}

// GetCachePath returns the path of the cached event feed in the user cache directory.
func GetCachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "mybrain", "events.ics"), nil
}

// LoadFromCache loads the cached event feed.
func LoadFromCache(loc *time.Location) (Buckets, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(cachePath, loc)
}

// IsCacheValid checks that the cache file exists and is younger than maxAge.
func IsCacheValid(cachePath string, maxAge time.Duration, now time.Time) (bool, error) {
	info, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.ModTime().After(now.Add(-maxAge)), nil
}
