package reports

import (
	"fmt"
	"strconv"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

type ListCmd struct {
	From     string `help:"Start date, inclusive (YYYY-MM-DD)."`
	To       string `help:"End date, inclusive (YYYY-MM-DD)."`
	Month    string `help:"Calendar month shortcut (YYYY-MM), overrides --from/--to."`
	Template int64  `short:"t" help:"Filter by template ID."`
	Project  string `short:"p" help:"Filter by project name (substring, case-insensitive)."`
	Keyword  string `short:"k" help:"Keyword search over free-text fields."`
	Limit    int    `short:"l" help:"Maximum number of results."`
	Order    string `help:"Sort order (date_asc|date_desc|created_asc|created_desc)." default:"date_desc"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	order, err := storage.ParseReportOrder(c.Order)
	if err != nil {
		return err
	}

	if c.Month != "" {
		var year, month int
		if _, err := fmt.Sscanf(c.Month, "%d-%d", &year, &month); err != nil {
			return fmt.Errorf("invalid month: %s (expected YYYY-MM)", c.Month)
		}
		reports, err := ctx.Reports.Monthly(year, month)
		if err != nil {
			return err
		}
		return printReports(ctx, reports)
	}

	filter := storage.ReportFilter{
		TemplateID:  c.Template,
		ProjectName: c.Project,
		Keyword:     c.Keyword,
		Limit:       c.Limit,
		OrderBy:     order,
	}
	if c.From != "" {
		if filter.StartDate, err = validation.Date(c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if filter.EndDate, err = validation.Date(c.To); err != nil {
			return err
		}
	}

	reports, err := ctx.Reports.List(filter)
	if err != nil {
		return err
	}
	return printReports(ctx, reports)
}

func printReports(ctx *cli.Context, reports []*models.Report) error {
	if len(reports) == 0 {
		fmt.Println("No reports found")
		return nil
	}

	templates, err := ctx.Templates.List()
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(templates))
	for _, t := range templates {
		names[t.ID] = t.Name
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Date(),
			r.ProjectName(),
			names[r.TemplateID],
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	fmt.Println(cli.RenderTable([]string{"ID", "DATE", "PROJECT", "TEMPLATE", "CREATED"}, rows))
	return nil
}
