package reports

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type DeleteCmd struct {
	ID    int64 `arg:"" help:"Report ID to delete."`
	Force bool  `short:"f" help:"Delete without confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	report, err := ctx.Reports.Get(c.ID)
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Println("Report not found")
		return nil
	}

	if !c.Force {
		label := fmt.Sprintf("report %d", report.ID)
		if d := report.Date(); d != "" {
			label = fmt.Sprintf("report %d (%s)", report.ID, d)
		}
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", label)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	deleted, err := ctx.Reports.Delete(c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Report not found")
		return nil
	}
	fmt.Println(cli.Confirmed("Deleted report %d", c.ID))
	return nil
}
