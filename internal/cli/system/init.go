package system

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	template, err := ctx.Templates.SeedDefault()
	if err != nil {
		return err
	}

	fmt.Println(cli.Confirmed("Initialized database at %s", ctx.Store.Path()))
	if template != nil {
		fmt.Println(cli.Confirmed("Seeded default template %q", template.Name))
	}
	return nil
}
