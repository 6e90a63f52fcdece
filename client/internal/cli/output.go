package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	headerStyle = primaryStyle.Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printer writes styled messages to a command's output streams.
type printer struct {
	out io.Writer
	err io.Writer
}

func (p printer) success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s%s\n", successStyle.Render("✓ "), fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...interface{}) {
	fmt.Fprintf(p.err, "%s%s\n", warningStyle.Render("⚠ "), fmt.Sprintf(format, args...))
}

func (p printer) errorf(format string, args ...interface{}) {
	fmt.Fprintf(p.err, "%s%s\n", errorStyle.Render("✗ "), fmt.Sprintf(format, args...))
}

func (p printer) info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s%s\n", infoStyle.Render("ℹ "), fmt.Sprintf(format, args...))
}

func (p printer) muted(format string, args ...interface{}) {
	fmt.Fprintln(p.out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func (p printer) section(title string) {
	fmt.Fprintln(p.out, primaryStyle.Render(title))
}

// table renders rows under headers. Cells of column highlight are styled by the
// returned style when non-nil.
func (p printer) table(headers []string, rows [][]string, highlight func(row, col int) *lipgloss.Style) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if highlight != nil {
				if s := highlight(row, col); s != nil {
					return s.Padding(0, 1)
				}
			}
			return cellStyle
		})
	fmt.Fprintln(p.out, t.Render())
}
