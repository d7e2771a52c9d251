// Package brain gathers the tasks, diary entries and calendar events the
// views are built from.
package brain

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/config"
	"github.com/mybrain/mybrain/internal/diary"
	"github.com/mybrain/mybrain/internal/events"
	"github.com/mybrain/mybrain/internal/tasks"
)

// Data is a read-only snapshot of every source.
type Data struct {
	Events      events.Buckets
	Diary       []diary.Entry
	Tasks       []tasks.Task
	SummaryDays int
	// EventsStale is set when events come from a missing or expired feed cache.
	EventsStale bool
}

// Counts are the dashboard headline numbers.
type Counts struct {
	Tasks        int
	Events       int
	DiaryEntries int
}

// Counts reports the dashboard numbers for the summary window ending on today.
func (d *Data) Counts(today calendar.Date) Counts {
	return Counts{
		Tasks:        len(tasks.Pending(d.Tasks)),
		Events:       d.Events.Between(today, today.AddDays(d.window()-1)),
		DiaryEntries: len(diary.LastDays(d.Diary, today, d.window())),
	}
}

// MoodSummary aggregates the diary entries of the summary window.
func (d *Data) MoodSummary(today calendar.Date) diary.Summary {
	return diary.Summarize(diary.LastDays(d.Diary, today, d.window()))
}

// TaskSummary aggregates all tasks.
func (d *Data) TaskSummary() tasks.Summary {
	return tasks.Summarize(d.Tasks)
}

func (d *Data) window() int {
	if d.SummaryDays <= 0 {
		return 7
	}
	return d.SummaryDays
}

// Load reads every configured source. A source that is not configured or
// whose file does not exist yet is left empty; a file that fails to parse is
// an error.
func Load(cfg *config.Config, logger *slog.Logger, now time.Time) (*Data, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data := &Data{
		Events:      make(events.Buckets),
		SummaryDays: cfg.Diary.SummaryDays,
	}

	if path := cfg.Data.Tasks; path != "" {
		list, err := tasks.Load(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("tasks file not found", slog.String("path", path))
		case err != nil:
			return nil, err
		default:
			data.Tasks = list
			logger.Debug("tasks loaded", slog.String("path", path), slog.Int("count", len(list)))
		}
	}

	if path := cfg.Data.Diary; path != "" {
		entries, err := diary.Load(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("diary file not found", slog.String("path", path))
		case err != nil:
			return nil, err
		default:
			data.Diary = entries
			logger.Debug("diary loaded", slog.String("path", path), slog.Int("count", len(entries)))
		}
	}

	buckets, stale, err := loadEvents(cfg, logger, now)
	if err != nil {
		return nil, err
	}
	data.Events = buckets
	data.EventsStale = stale
	return data, nil
}

func loadEvents(cfg *config.Config, logger *slog.Logger, now time.Time) (events.Buckets, bool, error) {
	if path := cfg.Data.Events; path != "" {
		buckets, err := events.LoadFromFile(path, time.Local)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("events file not found", slog.String("path", path))
			return make(events.Buckets), false, nil
		}
		if err != nil {
			return nil, false, err
		}
		logger.Debug("events loaded", slog.String("path", path), slog.Int("count", buckets.Count()))
		return buckets, false, nil
	}
	if cfg.Events.FeedURL == "" {
		return make(events.Buckets), false, nil
	}

	cachePath, err := events.GetCachePath()
	if err != nil {
		return nil, false, err
	}
	valid, err := events.IsCacheValid(cachePath, cfg.Events.MaxAge, now)
	if err != nil {
		return nil, false, fmt.Errorf("check events cache: %w", err)
	}
	buckets, err := events.LoadFromCache(time.Local)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("events feed not downloaded yet", slog.String("cache", cachePath))
		return make(events.Buckets), true, nil
	}
	if err != nil {
		// A broken cache is replaced on the next fetch.
		logger.Warn("events cache unreadable", slog.String("cache", cachePath), slog.String("error", err.Error()))
		return make(events.Buckets), true, nil
	}
	return buckets, !valid, nil
}
