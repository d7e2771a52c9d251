// Package diary loads diary entries, the source of the mood widget.
package diary

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/mood"
)

// Entry is a single diary entry tagged with a mood.
type Entry struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Content string    `yaml:"content"`
	Mood    mood.Mood `yaml:"mood"`
	Created time.Time `yaml:"created"`
}

// Day returns the calendar day the entry was written on.
func (e Entry) Day() calendar.Date {
	return calendar.DateOf(e.Created)
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads entries from a YAML (or JSON) document with a top-level
// "entries" list. Entries without an id get a generated one.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diary file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse diary file %s: %w", path, err)
	}
	for i := range doc.Entries {
		if !doc.Entries[i].Mood.IsValid() {
			return nil, fmt.Errorf("diary entry %d: %w", i, mood.ErrInvalidMood)
		}
		if doc.Entries[i].ID == "" {
			doc.Entries[i].ID = uuid.NewString()
		}
	}
	sort.SliceStable(doc.Entries, func(i, j int) bool {
		return doc.Entries[i].Created.After(doc.Entries[j].Created)
	})
	return doc.Entries, nil
}

// Moods extracts the mood of every entry.
func Moods(entries []Entry) []mood.Mood {
	out := make([]mood.Mood, len(entries))
	for i, e := range entries {
		out[i] = e.Mood
	}
	return out
}

// Between returns the entries written on days from..to inclusive.
func Between(entries []Entry, from, to calendar.Date) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		day := e.Day()
		if day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LastDays returns the entries of the n days ending on today.
func LastDays(entries []Entry, today calendar.Date, n int) []Entry {
	if n <= 0 {
		return nil
	}
	return Between(entries, today.AddDays(-(n - 1)), today)
}

// Summary is what the mood widget displays.
type Summary struct {
	Entries      int
	Distribution mood.Distribution
	Dominant     mood.Mood
}

// Summarize aggregates the moods of entries.
func Summarize(entries []Entry) Summary {
	moods := Moods(entries)
	return Summary{
		Entries:      len(entries),
		Distribution: mood.ComputeDistribution(moods),
		Dominant:     mood.MostFrequent(moods),
	}
}
