package reports

import (
	"fmt"
	"sort"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

type StatsCmd struct {
	From string `help:"Start date, inclusive (YYYY-MM-DD)."`
	To   string `help:"End date, inclusive (YYYY-MM-DD)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	var err error
	start, end := "", ""
	if c.From != "" {
		if start, err = validation.Date(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if end, err = validation.Date(c.To); err != nil {
			return err
		}
	}

	stats, err := ctx.Reports.GetStatistics(start, end)
	if err != nil {
		return err
	}

	lines := []string{fmt.Sprintf("Total reports: %d", stats.TotalReports)}
	if stats.StartDate != "" || stats.EndDate != "" {
		lines = append(lines, fmt.Sprintf("Range: %s .. %s", orAny(stats.StartDate), orAny(stats.EndDate)))
	}
	fmt.Println(cli.Panel("Report statistics", lines))

	if len(stats.TemplatesUsed) > 0 {
		fmt.Println(cli.RenderTable([]string{"TEMPLATE", "REPORTS"}, countRows(stats.TemplatesUsed)))
	}
	if len(stats.Projects) > 0 {
		fmt.Println(cli.RenderTable([]string{"PROJECT", "REPORTS"}, countRows(stats.Projects)))
	}
	return nil
}

// countRows orders by descending count, then name, for stable output.
func countRows(counts map[string]int) [][]string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	return rows
}

func orAny(s string) string {
	if s == "" {
		return "*"
	}
	return s
}
