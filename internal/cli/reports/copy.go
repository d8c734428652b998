package reports

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type CopyCmd struct {
	ID       int64  `arg:"" optional:"" help:"Report ID (looked up by date when omitted)."`
	Date     string `short:"d" help:"Find the report by date (YYYY-MM-DD)."`
	Template int64  `short:"t" help:"Scope the date lookup to one template."`
}

func (c *CopyCmd) Run(ctx *cli.Context) error {
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

	text := strings.Join(formatReportLines(report, template), "\n")
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	fmt.Println(cli.Confirmed("Copied report %d to clipboard", report.ID))
	return nil
}
