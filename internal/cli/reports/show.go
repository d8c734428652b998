package reports

import (
	"fmt"
	"sort"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
)

type ShowCmd struct {
	ID       int64  `arg:"" optional:"" help:"Report ID (looked up by date when omitted)."`
	Date     string `short:"d" help:"Find the report by date (YYYY-MM-DD)."`
	Template int64  `short:"t" help:"Scope the date lookup to one template."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	report, err := findReport(ctx, c.ID, c.Date, c.Template)
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Println("Report not found")
		return nil
	}

	template, err := ctx.Templates.Get(report.TemplateID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Report %d", report.ID)
	if d := report.Date(); d != "" {
		title = fmt.Sprintf("Report %d (%s)", report.ID, d)
	}

	lines := formatReportLines(report, template)
	if len(lines) == 0 {
		lines = append(lines, cli.Dim("(empty)"))
	}
	lines = append(lines,
		"",
		cli.Dim(fmt.Sprintf("Created: %s", report.CreatedAt.Local().Format("2006-01-02 15:04"))),
		cli.Dim(fmt.Sprintf("Updated: %s", report.UpdatedAt.Local().Format("2006-01-02 15:04"))),
	)
	fmt.Println(cli.Panel(title, lines))
	return nil
}

// formatReportLines lays the data out in template field order with labels.
// Fields the template no longer knows about come last under their raw keys.
func formatReportLines(report *models.Report, template *models.Template) []string {
	var lines []string
	seen := make(map[string]bool)

	if template != nil {
		for _, f := range template.SortedFields() {
			seen[f.Name] = true
			value := report.FieldValue(f.Name)
			if value == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", f.Label, value))
		}
	}
	var extra []string
	for name, value := range report.Data {
		if seen[name] || value == "" {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		lines = append(lines, fmt.Sprintf("%s: %s", name, report.Data[name]))
	}
	return lines
}
