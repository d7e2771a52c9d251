package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mybrain/mybrain/internal/brain"
	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/render"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

type inputMode int

const (
	inputNone inputMode = iota
	inputYear
	inputMonth
)

// Run starts the interactive Bubble Tea UI with selected highlighted.
func Run(svc *calendar.Service, data *brain.Data, selected calendar.Date, mode calendar.ViewMode) error {
	prog := tea.NewProgram(newModel(svc, data, selected, mode), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

type model struct {
	svc       *calendar.Service
	data      *brain.Data
	selected  calendar.Date
	mode      calendar.ViewMode
	showMood  bool
	width     int
	inputMode inputMode
	input     textinput.Model
	statusMsg string
}

func newModel(svc *calendar.Service, data *brain.Data, selected calendar.Date, mode calendar.ViewMode) model {
	if svc == nil {
		svc = calendar.NewService()
	}
	if data == nil {
		data = &brain.Data{}
	}
	if selected.IsZero() {
		selected = svc.Today()
	}
	if mode != calendar.ModeWeek {
		mode = calendar.ModeMonth
	}
	ti := textinput.New()
	ti.Placeholder = "number"
	ti.CharLimit = 16
	ti.Prompt = "> "
	return model{
		svc:      svc,
		data:     data,
		selected: selected,
		mode:     mode,
		input:    ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.inputMode != inputNone {
			return m.handleInputKey(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h", "left":
			m.move(m.selected.AddDays(-1))
		case "l", "right":
			m.move(m.selected.AddDays(1))
		case "k", "up":
			m.move(m.selected.AddDays(-7))
		case "j", "down":
			m.move(m.selected.AddDays(7))
		case "[":
			m.move(m.selected.AddMonths(-1))
		case "]":
			m.move(m.selected.AddMonths(1))
		case "{":
			m.move(m.selected.AddMonths(-12))
		case "}":
			m.move(m.selected.AddMonths(12))
		case "w":
			if m.mode == calendar.ModeWeek {
				m.mode = calendar.ModeMonth
			} else {
				m.mode = calendar.ModeWeek
			}
		case "o":
			m.showMood = !m.showMood
		case ".":
			m.move(m.svc.Today())
		case "y":
			m.activateInput(inputYear, "")
		case "m":
			m.activateInput(inputMonth, "")
		}
	}
	return m, nil
}

func (m *model) move(to calendar.Date) {
	m.selected = to
	m.statusMsg = ""
}

func (m model) View() string {
	if m.inputMode != inputNone {
		return m.inputView()
	}

	sb := strings.Builder{}
	sb.WriteString(m.renderCalendar())
	sb.WriteString("\n\n")
	sb.WriteString(render.DayEvents(m.selected, m.data.Events.For(m.selected)))
	if m.showMood {
		sb.WriteString("\n\n")
		sb.WriteString(render.MoodSummary(m.data.MoodSummary(m.svc.Today())))
	}
	sb.WriteString("\n\n")
	sb.WriteString(render.HelpLine())
	if m.statusMsg != "" {
		sb.WriteString("\n")
		if noColorMode {
			sb.WriteString(m.statusMsg)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")).Render(m.statusMsg))
		}
	}
	if m.data.EventsStale {
		sb.WriteString("\n\n")
		if noColorMode {
			sb.WriteString(render.StaleEventsNotice)
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(render.StaleEventsNotice))
		}
	}
	return sb.String()
}

func (m model) renderCalendar() string {
	if m.mode == calendar.ModeWeek {
		return render.WeekStrip(m.svc.Week(m.selected, m.selected), m.svc.WeekStart())
	}
	width := m.width
	if width <= 0 {
		width = 100
	}
	view := m.svc.Month(m.selected.Year, int(m.selected.Month), m.selected)
	return render.Layout(render.BuildBlocks([]calendar.MonthView{view}, m.svc.WeekStart()), width)
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.statusMsg = ""
		return m, nil
	case tea.KeyEnter:
		m.applyInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) activateInput(mode inputMode, placeholder string) {
	m.inputMode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	m.statusMsg = ""
}

func (m *model) applyInput() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.statusMsg = "Please enter a number"
		return
	}
	year, month := m.selected.Year, m.selected.Month
	switch m.inputMode {
	case inputYear:
		fields := strings.Fields(value)
		if len(fields) > 2 {
			m.statusMsg = "Expected: year or year month"
			return
		}
		y, err := strconv.Atoi(fields[0])
		if err != nil || y < 1 {
			m.statusMsg = "Invalid year"
			return
		}
		year = y
		if len(fields) == 2 {
			mo, err := strconv.Atoi(fields[1])
			if err != nil || mo < 1 || mo > 12 {
				m.statusMsg = "Month must be between 1 and 12"
				return
			}
			month = time.Month(mo)
		}
	case inputMonth:
		mo, err := strconv.Atoi(value)
		if err != nil {
			m.statusMsg = "Invalid month"
			return
		}
		if mo < 1 || mo > 12 {
			m.statusMsg = "Month must be between 1 and 12"
			return
		}
		month = time.Month(mo)
	}
	m.selected = calendar.NewDate(year, month, min(m.selected.Day, calendar.DaysIn(year, month)))
	m.mode = calendar.ModeMonth
	m.statusMsg = ""
	m.inputMode = inputNone
	m.input.Blur()
}

func (m model) inputView() string {
	var label string
	switch m.inputMode {
	case inputYear:
		label = "Enter a year, optionally followed by a month (Enter to confirm / Esc to cancel)"
	case inputMonth:
		label = "Enter a month 1-12 (Enter to confirm / Esc to cancel)"
	default:
		return ""
	}
	if noColorMode {
		return label + "\n\n" + m.input.View()
	}
	return lipgloss.NewStyle().
		Bold(true).
		Render(label) + "\n\n" + m.input.View()
}
