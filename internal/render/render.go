package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mybrain/mybrain/internal/calendar"
	"github.com/mybrain/mybrain/internal/textwidth"
)

const (
	cellPadding = 1
	blockGap    = 3
	eventMarker = "•"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	cellStyle     = lipgloss.NewStyle().Padding(0, cellPadding)
	dimCellStyle  = cellStyle.Foreground(lipgloss.Color("#6B7280"))
	todayStyle    = cellStyle.Bold(true).Foreground(lipgloss.Color("#34D399"))
	selectedStyle = cellStyle.Bold(true).Reverse(true)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// MonthBlock packages rendered lines with their visual width/height.
type MonthBlock struct {
	Lines  []string
	Width  int
	Height int
}

// BuildBlocks converts month views into renderable blocks.
func BuildBlocks(views []calendar.MonthView, weekStart time.Weekday) []MonthBlock {
	blocks := make([]MonthBlock, len(views))
	for i, view := range views {
		blocks[i] = buildMonthBlock(view, weekStart)
	}
	return blocks
}

// Layout packs blocks left to right while they fit in width columns and
// starts a new row of blocks when they do not.
func Layout(blocks []MonthBlock, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	var rows []string
	var current [][]string
	used := 0
	flush := func() {
		if len(current) > 0 {
			rows = append(rows, strings.Join(textwidth.JoinColumns(current, blockGap), "\n"))
			current, used = nil, 0
		}
	}
	for _, block := range blocks {
		need := block.Width
		if len(current) > 0 {
			need += blockGap
		}
		if len(current) > 0 && used+need > width {
			flush()
			need = block.Width
		}
		current = append(current, block.Lines)
		used += need
	}
	flush()
	return strings.Join(rows, "\n\n")
}

// WeekdayHeaders returns short weekday names in display order.
func WeekdayHeaders(weekStart time.Weekday) []string {
	days := calendar.Weekdays(weekStart)
	headers := make([]string, len(days))
	for i, d := range days {
		headers[i] = d.String()[:2]
	}
	return headers
}

func buildMonthBlock(view calendar.MonthView, weekStart time.Weekday) MonthBlock {
	lunar := hasLunar(view)
	perWeek := 1
	if lunar {
		perWeek = 2
	}

	rows := make([][]string, 0, len(view.Weeks)*perWeek)
	rowCells := make([][]calendar.Cell, 0, cap(rows))
	for _, week := range view.Weeks {
		gregorian := make([]string, len(week))
		for i, c := range week {
			gregorian[i] = dayLabel(c)
		}
		rows = append(rows, gregorian)
		rowCells = append(rowCells, week)
		if lunar {
			secondary := make([]string, len(week))
			for i, c := range week {
				secondary[i] = lunarLabel(c)
			}
			rows = append(rows, secondary)
			rowCells = append(rowCells, week)
		}
	}

	t := gridTable(WeekdayHeaders(weekStart), rows, func(row, col int) calendar.Cell {
		return rowCells[row][col]
	})

	grid := strings.Split(t.String(), "\n")
	lines := append([]string{textwidth.Center(title(view.Title), textwidth.StringWidth(grid[0]))}, grid...)
	return newBlock(lines)
}

func newBlock(lines []string) MonthBlock {
	width := 0
	for _, line := range lines {
		width = max(width, textwidth.StringWidth(line))
	}
	return MonthBlock{Lines: lines, Width: width, Height: len(lines)}
}

// gridTable renders a calendar table whose data cells are styled from the
// calendar cell they show.
func gridTable(headers []string, rows [][]string, cellAt func(row, col int) calendar.Cell) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if !noColorMode {
		t = t.BorderStyle(borderStyle)
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			if noColorMode {
				return cellStyle
			}
			return headerStyle.Padding(0, cellPadding)
		}
		return styleFor(cellAt(row, col))
	})
}

func styleFor(c calendar.Cell) lipgloss.Style {
	if noColorMode {
		return cellStyle
	}
	switch {
	case c.Blank:
		return cellStyle
	case c.IsSelected:
		return selectedStyle
	case c.IsToday:
		return todayStyle
	case !c.InMonth:
		return dimCellStyle
	default:
		return cellStyle
	}
}

func hasLunar(view calendar.MonthView) bool {
	for _, week := range view.Weeks {
		for _, c := range week {
			if c.HasLunarData() {
				return true
			}
		}
	}
	return false
}

func dayLabel(c calendar.Cell) string {
	if c.Blank {
		return "   "
	}
	marker := " "
	if c.HasEvents {
		marker = eventMarker
	}
	return fmt.Sprintf("%2d%s", c.Date.Day, marker)
}

func lunarLabel(c calendar.Cell) string {
	if c.Blank || !c.HasLunarData() {
		return ""
	}
	return c.SecondaryLabel()
}

// WeekStrip renders the 7-day selector.
func WeekStrip(view calendar.WeekView, weekStart time.Weekday) string {
	row := make([]string, len(view.Days))
	for i, c := range view.Days {
		row[i] = dayLabel(c)
	}
	t := gridTable(WeekdayHeaders(weekStart), [][]string{row}, func(_, col int) calendar.Cell {
		return view.Days[col]
	})
	return title(view.Title) + "\n" + t.String()
}

// HelpLine describes the interactive key bindings.
func HelpLine() string {
	helpText := "h/l day  j/k week  [/] month  {/} year  w week/month  o mood  . today  y/m jump  q quit"
	if noColorMode {
		return helpText
	}
	return helpStyle.Render(helpText)
}

// Legend explains the grid markers.
func Legend() string {
	legend := eventMarker + " has events"
	if noColorMode {
		return legend
	}
	return mutedStyle.Render(legend + "   " + todayStyle.Render("today") + "   " + selectedStyle.Render("selected"))
}

func muted(s string) string {
	if noColorMode {
		return s
	}
	return mutedStyle.Render(s)
}

func title(s string) string {
	if noColorMode {
		return s
	}
	return titleStyle.Render(s)
}
