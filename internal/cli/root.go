package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mag-rock/smart-nippo/internal/config"
	"github.com/mag-rock/smart-nippo/internal/service"
	"github.com/mag-rock/smart-nippo/internal/storage"
)

// Context is threaded through every command Run method. The store handle is
// constructed once at process start and closed at process end; nothing keeps
// a process-wide singleton.
type Context struct {
	Store     storage.Provider
	Config    *config.Config
	Templates *service.TemplateService
	Reports   *service.ReportService
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Title renders a bold section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Dim renders secondary text.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// Panel renders lines inside a rounded border with an optional title.
func Panel(title string, lines []string) string {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = titleStyle.Render(title) + "\n" + body
	}
	return panelStyle.Render(body)
}

// RenderTable renders a bordered table with a header row.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// Confirmed formats a success line.
func Confirmed(format string, args ...any) string {
	return fmt.Sprintf("✓ "+format, args...)
}
