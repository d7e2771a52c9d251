// Package config defines the mybrain configuration file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mybrain/mybrain/internal/calendar"
)

// Week start values.
const (
	WeekStartSunday = "sunday"
	WeekStartMonday = "monday"
)

// Fill values.
const (
	FillAdjacent = "adjacent"
	FillBlank    = "blank"
)

// Config represents the application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Calendar CalendarConfig `yaml:"calendar"`
	Data     DataConfig     `yaml:"data"`
	Events   EventsConfig   `yaml:"events"`
	Diary    DiaryConfig    `yaml:"diary"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Calendar.Validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.Diary.Validate(); err != nil {
		return fmt.Errorf("diary: %w", err)
	}
	return nil
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	NoColor  bool       `yaml:"no_color"`
}

// CalendarConfig controls grid layout.
type CalendarConfig struct {
	WeekStart string `yaml:"week_start"`
	Fill      string `yaml:"fill"`
	Lunar     bool   `yaml:"lunar"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	c.WeekStart = strings.ToLower(c.WeekStart)
	c.Fill = strings.ToLower(c.Fill)
	return validation.ValidateStruct(c,
		validation.Field(&c.WeekStart, validation.Required, validation.In(WeekStartSunday, WeekStartMonday)),
		validation.Field(&c.Fill, validation.Required, validation.In(FillAdjacent, FillBlank)),
	)
}

// Options translates the configuration into calendar service options.
func (c *CalendarConfig) Options() []calendar.Option {
	weekStart := time.Sunday
	if c.WeekStart == WeekStartMonday {
		weekStart = time.Monday
	}
	fill := calendar.FillAdjacent
	if c.Fill == FillBlank {
		fill = calendar.FillBlank
	}
	return []calendar.Option{
		calendar.WithWeekStart(weekStart),
		calendar.WithFill(fill),
		calendar.WithLunar(c.Lunar),
	}
}

// DataConfig points at the task, diary and event sources. Empty paths are skipped.
type DataConfig struct {
	Tasks  string `yaml:"tasks"`
	Diary  string `yaml:"diary"`
	Events string `yaml:"events"`
}

// EventsConfig holds the remote calendar feed settings.
type EventsConfig struct {
	FeedURL string        `yaml:"feed_url"`
	MaxAge  time.Duration `yaml:"max_age"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxAge, validation.Required, validation.Min(time.Minute)),
	)
}

// DiaryConfig controls the mood summary window.
type DiaryConfig struct {
	SummaryDays int `yaml:"summary_days"`
}

// Validate validates the diary configuration.
func (c *DiaryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SummaryDays, validation.Required, validation.Min(1), validation.Max(366)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			LogLevel: slog.LevelWarn,
		},
		Calendar: CalendarConfig{
			WeekStart: WeekStartSunday,
			Fill:      FillAdjacent,
		},
		Events: EventsConfig{
			MaxAge: 24 * time.Hour,
		},
		Diary: DiaryConfig{
			SummaryDays: 7,
		},
	}
}
