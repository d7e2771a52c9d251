package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/mybrain/mybrain/internal/brain"
	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/config"
	"github.com/mybrain/mybrain/internal/events"
	"github.com/mybrain/mybrain/internal/render"
	"github.com/mybrain/mybrain/internal/tui"
	pkgconfig "github.com/mybrain/mybrain/pkg/config"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	svc    *calendar.Service
	data   *brain.Data
	plain  bool
}

// setup loads the configuration and every data source.
func setup(cmd *cli.Command) (*app, error) {
	configPath := cmd.String("config")

	cfg := config.NewDefaultConfig()
	found, err := pkgconfig.LoadOptional(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.App.LogLevel}))
	slog.SetDefault(logger)
	if !found {
		logger.Debug("config file not found, using defaults", slog.String("path", configPath))
	}

	if cmd.Bool("no-color") || cfg.App.NoColor {
		render.SetNoColor(true)
		tui.SetNoColor(true)
	}

	now := time.Now()
	data, err := brain.Load(cfg, logger, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	opts := append(cfg.Calendar.Options(),
		calendar.WithNow(time.Now),
		calendar.WithEvents(data.Events),
	)
	return &app{
		cfg:    cfg,
		logger: logger,
		svc:    calendar.NewService(opts...),
		data:   data,
		plain:  cmd.Bool("plain"),
	}, nil
}

func (a *app) print(view render.View, req calendar.Request, selected calendar.Date) error {
	return render.RunPlain(render.PlainOptions{
		Service:  a.svc,
		Data:     a.data,
		View:     view,
		Request:  req,
		Selected: selected,
	})
}

// run is the default action: the interactive calendar, or a printed month
// or year when --plain is given or a year was requested.
func run(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	req, err := parseRequest(time.Now(), false, cmd.Args().Slice())
	if err != nil {
		return err
	}
	today := a.svc.Today()
	if req.Mode == calendar.ModeYear {
		return a.print(render.ViewYear, req, today)
	}
	if a.plain {
		return a.print(render.ViewMonth, req, today)
	}
	return tui.Run(a.svc, a.data, focusDay(req, today), calendar.ModeMonth)
}

// focusDay keeps today selected when it lies in the requested month and
// otherwise selects the first of that month.
func focusDay(req calendar.Request, today calendar.Date) calendar.Date {
	if today.Year == req.Year && int(today.Month) == req.Month {
		return today
	}
	return calendar.NewDate(req.Year, time.Month(req.Month), 1)
}

func runMonth(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	req, err := parseRequest(time.Now(), false, cmd.Args().Slice())
	if err != nil {
		return err
	}
	if req.Mode == calendar.ModeYear {
		return errors.New("month expects [month] or [year month]")
	}
	if a.plain {
		return a.print(render.ViewMonth, req, a.svc.Today())
	}
	return tui.Run(a.svc, a.data, focusDay(req, a.svc.Today()), calendar.ModeMonth)
}

func runWeek(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	day, err := parseDay(a.svc.Today(), cmd.Args().Slice())
	if err != nil {
		return err
	}
	if a.plain {
		return a.print(render.ViewWeek, calendar.Request{}, day)
	}
	return tui.Run(a.svc, a.data, day, calendar.ModeWeek)
}

func runYear(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	req, err := parseRequest(time.Now(), true, cmd.Args().Slice())
	if err != nil {
		return err
	}
	return a.print(render.ViewYear, req, a.svc.Today())
}

// printView builds an action that prints a view without arguments.
func printView(view render.View) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Args().Len() > 0 {
			return fmt.Errorf("%s takes no arguments", cmd.Name)
		}
		return a.print(view, calendar.Request{}, a.svc.Today())
	}
}

func runFetchEvents(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	url := a.cfg.Events.FeedURL
	if url == "" {
		return errors.New("events.feed_url is not configured")
	}
	if !a.plain {
		return events.Download(url)
	}

	dest, err := events.GetCachePath()
	if err != nil {
		return err
	}
	size, err := events.Fetch(ctx, nil, url, dest, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	buckets, err := events.LoadFromFile(dest, time.Local)
	if err != nil {
		return fmt.Errorf("downloaded feed is unreadable: %w", err)
	}
	a.logger.Info("events feed downloaded",
		slog.String("path", dest),
		slog.Int64("bytes", size),
		slog.Int("events", buckets.Count()),
	)
	fmt.Printf("Saved %d events to %s\n", buckets.Count(), dest)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "mybrain",
		Usage:     "Calendar, mood and task overview for your terminal",
		ArgsUsage: "[year] [month]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("MYBRAIN_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"N"},
				Usage:   "Disable all color output",
				Sources: cli.EnvVars("MYBRAIN_NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:    "plain",
				Aliases: []string{"n"},
				Usage:   "Render once and exit instead of starting the interactive view",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "month",
				Usage:     "Show a month",
				ArgsUsage: "[month] | [year month]",
				Action:    runMonth,
			},
			{
				Name:      "week",
				Usage:     "Show the week containing a day",
				ArgsUsage: "[year month day]",
				Action:    runWeek,
			},
			{
				Name:      "year",
				Usage:     "Print all twelve months of a year",
				ArgsUsage: "[year]",
				Action:    runYear,
			},
			{
				Name:   "mood",
				Usage:  "Print the mood distribution of recent diary entries",
				Action: printView(render.ViewMood),
			},
			{
				Name:   "tasks",
				Usage:  "Print task progress and open tasks",
				Action: printView(render.ViewTasks),
			},
			{
				Name:   "dashboard",
				Usage:  "Print the overview of tasks, events and mood",
				Action: printView(render.ViewDashboard),
			},
			{
				Name:   "fetch-events",
				Usage:  "Download the calendar feed into the local cache",
				Action: runFetchEvents,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
