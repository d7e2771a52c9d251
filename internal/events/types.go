package events

import (
	"sort"
	"time"

	"github.com/mybrain/mybrain/internal/calendar"
)

// Event is a calendar event as shown in the day list.
type Event struct {
	UID      string    `json:"uid"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	AllDay   bool      `json:"all_day"`
}

// Buckets groups events by the day they start on.
type Buckets map[calendar.Date][]Event

// Add files e under its start day, keeping each bucket ordered by start time.
func (b Buckets) Add(e Event) {
	day := calendar.DateOf(e.Start)
	list := append(b[day], e)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].AllDay != list[j].AllDay {
			return list[i].AllDay
		}
		return list[i].Start.Before(list[j].Start)
	})
	b[day] = list
}

// Has reports whether d has at least one event.
func (b Buckets) Has(d calendar.Date) bool {
	return len(b[d]) > 0
}

// For returns the events of d.
func (b Buckets) For(d calendar.Date) []Event {
	return b[d]
}

// Count returns the number of events across all days.
func (b Buckets) Count() int {
	n := 0
	for _, list := range b {
		n += len(list)
	}
	return n
}

// Between counts the events of days from..to inclusive.
func (b Buckets) Between(from, to calendar.Date) int {
	n := 0
	for day, list := range b {
		if day.Before(from) || day.After(to) {
			continue
		}
		n += len(list)
	}
	return n
}

// LookupKey finds the bucket of d in a string-keyed map produced by an
// external source. Keys must equal calendar.DateKey(d) exactly.
func LookupKey(legacy map[string][]Event, d calendar.Date) []Event {
	return legacy[calendar.DateKey(d)]
}
