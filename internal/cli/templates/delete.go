package templates

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type DeleteCmd struct {
	ID    int64 `arg:"" help:"Template ID to delete."`
	Force bool  `short:"f" help:"Delete without confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	template, err := ctx.Templates.Get(c.ID)
	if err != nil {
		return err
	}
	if template == nil {
		fmt.Println("Template not found")
		return nil
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete template %q?", template.Name)).
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

	deleted, err := ctx.Templates.Delete(c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Template not found")
		return nil
	}
	fmt.Println(cli.Confirmed("Deleted template %q", template.Name))
	return nil
}
