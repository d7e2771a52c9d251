// Package tasks loads the task list and summarises its progress.
package tasks

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPriority is returned for a priority name that is not low, medium or high.
var ErrInvalidPriority = errors.New("tasks: invalid priority")

// Priority orders open tasks; higher values come first.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns the display name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// UnmarshalText parses a priority name case-insensitively. An empty value is Low.
func (p *Priority) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "low":
		*p = PriorityLow
	case "medium":
		*p = PriorityMedium
	case "high":
		*p = PriorityHigh
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(text))
	}
	return nil
}

// Task is one entry of the task list. DueDate is nil for undated tasks.
type Task struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Completed   bool       `yaml:"completed"`
	Priority    Priority   `yaml:"priority"`
	DueDate     *time.Time `yaml:"due"`
}

type document struct {
	Tasks []Task `yaml:"tasks"`
}

// Load reads tasks from a YAML (or JSON) document with a top-level "tasks" list.
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tasks file %s: %w", path, err)
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == "" {
			doc.Tasks[i].ID = uuid.NewString()
		}
	}
	return doc.Tasks, nil
}

// Summary backs the tasks progress ring.
type Summary struct {
	Total     int
	Completed int
	Progress  float64
}

// Summarize counts completed tasks. Progress is 0 for an empty list.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Progress = float64(s.Completed) / float64(s.Total)
	}
	return s
}

// Pending returns the uncompleted tasks, highest priority first, then by due
// date with undated tasks last.
func Pending(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
	return out
}
