package templates

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type SetDefaultCmd struct {
	ID int64 `arg:"" help:"Template ID to set as the default."`
}

func (c *SetDefaultCmd) Run(ctx *cli.Context) error {
	template, err := ctx.Templates.SetDefault(c.ID)
	if err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Template %q is now the default", template.Name))
	return nil
}
