package reports

import (
	"github.com/mag-rock/smart-nippo/internal/cli"
)

type SearchCmd struct {
	Keyword string `arg:"" help:"Keyword to match against content, issues, tomorrow_plan and notes."`
	Limit   int    `short:"l" help:"Maximum number of results."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	reports, err := ctx.Reports.Search(c.Keyword, c.Limit)
	if err != nil {
		return err
	}
	return printReports(ctx, reports)
}
