package reports

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

type EditCmd struct {
	ID       int64  `arg:"" optional:"" help:"Report ID (looked up by date when omitted)."`
	Date     string `short:"d" help:"Find the report by date (YYYY-MM-DD)."`
	Template int64  `short:"t" help:"Scope the date lookup to one template."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
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
	if template == nil {
		return fmt.Errorf("template %d referenced by report %d no longer exists", report.TemplateID, report.ID)
	}

	data, err := cli.CollectReportData(template, ctx.Config.Editor.Command, report.Data)
	if err != nil {
		return err
	}

	if _, err := ctx.Reports.Update(report.ID, data); err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Updated report %d", report.ID))
	return nil
}

func findReport(ctx *cli.Context, id int64, date string, templateID int64) (*models.Report, error) {
	if id != 0 {
		return ctx.Reports.Get(id)
	}
	if date == "" {
		return nil, fmt.Errorf("either a report ID or --date is required")
	}
	normalized, err := validation.Date(date)
	if err != nil {
		return nil, err
	}
	return ctx.Reports.GetByDate(normalized, templateID)
}
