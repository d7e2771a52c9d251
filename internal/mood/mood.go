// Package mood aggregates diary moods into the distribution and summary shown
// by the mood widget.
package mood

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMood is returned when a mood name or rank cannot be parsed.
var ErrInvalidMood = errors.New("mood: invalid mood")

// Mood is a diary mood category. Its value is the rank, from most negative to
// most positive.
type Mood int

const (
	Terrible Mood = iota + 1
	Bad
	Okay
	Good
	Awesome
)

// All lists the moods in ascending rank.
var All = []Mood{Terrible, Bad, Okay, Good, Awesome}

var names = map[Mood]string{
	Terrible: "Terrible",
	Bad:      "Bad",
	Okay:     "Okay",
	Good:     "Good",
	Awesome:  "Awesome",
}

// Rank is the ordering value used for tie-breaks and rendering order.
func (m Mood) Rank() int {
	return int(m)
}

// IsValid reports whether m is one of the known moods.
func (m Mood) IsValid() bool {
	_, ok := names[m]
	return ok
}

func (m Mood) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return "Mood(" + strconv.Itoa(int(m)) + ")"
}

// ParseMood accepts a mood name (case-insensitive) or its rank.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mood(n); m.IsValid() {
			return m, nil
		}
		return 0, fmt.Errorf("%w: rank %d", ErrInvalidMood, n)
	}
	for m, name := range names {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

// MarshalText encodes the mood by name.
func (m Mood) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidMood, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mood name or rank.
func (m *Mood) UnmarshalText(text []byte) error {
	parsed, err := ParseMood(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
