package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/mybrain/mybrain/internal/brain"
	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/tasks"
)

// View selects what RunPlain prints.
type View string

const (
	ViewMonth     View = "month"
	ViewWeek      View = "week"
	ViewYear      View = "year"
	ViewMood      View = "mood"
	ViewTasks     View = "tasks"
	ViewDashboard View = "dashboard"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer  io.Writer
	Service *calendar.Service
	Data    *brain.Data
	View    View
	Request calendar.Request
	// Selected is highlighted and its events are listed. Zero means today.
	Selected calendar.Date
	Width    int
}

// RunPlain renders the requested view exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Service == nil {
		opts.Service = calendar.NewService()
	}
	if opts.Data == nil {
		opts.Data = &brain.Data{}
	}
	if opts.Selected.IsZero() {
		opts.Selected = opts.Service.Today()
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}

	output := Render(opts.Service, opts.Data, opts.View, opts.Request.Normalize(), opts.Selected, width)
	if output == "" {
		return nil
	}
	_, err := fmt.Fprintln(opts.Writer, output)
	return err
}

// Render builds the text of a view.
func Render(svc *calendar.Service, data *brain.Data, view View, req calendar.Request, selected calendar.Date, width int) string {
	switch view {
	case ViewYear:
		blocks := BuildBlocks(svc.Year(req.Year, selected), svc.WeekStart())
		return Layout(blocks, width)
	case ViewWeek:
		return WeekStrip(svc.Week(selected, selected), svc.WeekStart()) + "\n\n" +
			DayEvents(selected, data.Events.For(selected))
	case ViewMood:
		return MoodSummary(data.MoodSummary(svc.Today()))
	case ViewTasks:
		return TaskSummary(data.TaskSummary(), tasks.Pending(data.Tasks))
	case ViewDashboard:
		return Dashboard(svc, data)
	default:
		blocks := BuildBlocks([]calendar.MonthView{svc.Month(req.Year, req.Month, selected)}, svc.WeekStart())
		out := Layout(blocks, width)
		if svc.HasEventData() {
			out += "\n" + Legend() + "\n\n" + DayEvents(selected, data.Events.For(selected))
		}
		return out
	}
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
