package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/mybrain/mybrain/internal/brain"
	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/diary"
	"github.com/mybrain/mybrain/internal/events"
	"github.com/mybrain/mybrain/internal/mood"
	"github.com/mybrain/mybrain/internal/tasks"
	"github.com/mybrain/mybrain/internal/textwidth"
)

const (
	moodBarWidth   = 20
	pendingPreview = 5
)

var moodColors = map[mood.Mood]lipgloss.Color{
	mood.Terrible: lipgloss.Color("#EF4444"),
	mood.Bad:      lipgloss.Color("#F97316"),
	mood.Okay:     lipgloss.Color("#FACC15"),
	mood.Good:     lipgloss.Color("#22C55E"),
	mood.Awesome:  lipgloss.Color("#3B82F6"),
}

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#475569")).
	Padding(0, 1)

func card(body string) string {
	if noColorMode {
		return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1).Render(body)
	}
	return cardStyle.Render(body)
}

func moodName(m mood.Mood) string {
	if noColorMode {
		return m.String()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(moodColors[m]).Render(m.String())
}

// DayEvents lists the events of one day.
func DayEvents(day calendar.Date, list []events.Event) string {
	var sb strings.Builder
	sb.WriteString(title(day.Time(nil).Format("Monday, January 2, 2006")))
	sb.WriteString("\n")
	if len(list) == 0 {
		sb.WriteString(muted("No events"))
		return sb.String()
	}
	for _, e := range list {
		when := "All day"
		if !e.AllDay {
			when = e.Start.Format("15:04")
			if e.End.After(e.Start) {
				when += "-" + e.End.Format("15:04")
			}
		}
		line := fmt.Sprintf("%s %-11s %s", eventMarker, when, e.Title)
		if e.Location != "" {
			line += muted(" @ " + e.Location)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// MoodSummary renders the mood widget: one bar per mood in rank order and
// the dominant mood.
func MoodSummary(summary diary.Summary) string {
	var sb strings.Builder
	sb.WriteString(title("Mood summary"))
	sb.WriteString("\n")
	if summary.Entries == 0 {
		sb.WriteString(muted("No data yet"))
		return sb.String()
	}
	for _, share := range summary.Distribution {
		filled := int(share.Fraction * moodBarWidth)
		bar := strings.Repeat("█", filled)
		if !noColorMode {
			bar = lipgloss.NewStyle().Foreground(moodColors[share.Mood]).Render(bar)
		}
		bar += strings.Repeat("░", moodBarWidth-filled)
		fmt.Fprintf(&sb, "%s %s %3d%%\n", textwidth.PadRight(moodName(share.Mood), 8), bar, share.Percent())
	}
	fmt.Fprintf(&sb, "Your mood was %s most of the time", moodName(summary.Dominant))
	return sb.String()
}

// TaskSummary renders completion progress and the most pressing open tasks.
func TaskSummary(summary tasks.Summary, pending []tasks.Task) string {
	var sb strings.Builder
	sb.WriteString(title("Tasks"))
	sb.WriteString("\n")
	if summary.Total == 0 {
		sb.WriteString(muted("No tasks"))
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s %d/%d done\n", progressBar(summary.Progress), summary.Completed, summary.Total)
	for i, t := range pending {
		if i == pendingPreview {
			sb.WriteString(muted(fmt.Sprintf("… %d more", len(pending)-pendingPreview)))
			sb.WriteString("\n")
			break
		}
		line := "○ " + t.Title
		if t.Priority == tasks.PriorityHigh {
			line += " !"
		}
		if t.DueDate != nil {
			line += muted(" due " + t.DueDate.Format("Jan 2"))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func progressBar(fraction float64) string {
	if noColorMode {
		filled := int(fraction * moodBarWidth)
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", moodBarWidth-filled) + "]"
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(moodBarWidth+2), progress.WithoutPercentage())
	return bar.ViewAs(fraction)
}

// Dashboard combines the headline counts, this week and the task and mood widgets.
func Dashboard(svc *calendar.Service, data *brain.Data) string {
	today := svc.Today()
	counts := data.Counts(today)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprintf("Tasks\n%d", counts.Tasks)), " ",
		card(fmt.Sprintf("Events\n%d", counts.Events)), " ",
		card(fmt.Sprintf("Diary\n%d", counts.DiaryEntries)),
	)
	week := WeekStrip(svc.Week(today, today), svc.WeekStart())
	widgets := lipgloss.JoinHorizontal(lipgloss.Top,
		card(TaskSummary(data.TaskSummary(), tasks.Pending(data.Tasks))), " ",
		card(MoodSummary(data.MoodSummary(today))),
	)
	parts := []string{stats, week, DayEvents(today, data.Events.For(today)), widgets}
	if data.EventsStale {
		parts = append(parts, muted(StaleEventsNotice))
	}
	return strings.Join(parts, "\n\n")
}

// StaleEventsNotice tells the user the cached calendar feed is missing or expired.
const StaleEventsNotice = "The calendar feed has not been downloaded recently, run `mybrain fetch-events` to refresh it"
