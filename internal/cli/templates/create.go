package templates

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
)

type CreateCmd struct {
	Name        string `short:"n" help:"Template name (prompted when omitted)."`
	Description string `short:"d" help:"Template description."`
	Default     bool   `help:"Make this the default template."`
	File        string `short:"f" type:"existingfile" help:"Import the template definition from a JSON export instead of prompting."`
}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	if c.File != "" {
		return c.runFromFile(ctx)
	}

	name := c.Name
	description := c.Description
	isDefault := c.Default
	if name == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Template name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(&description),
			huh.NewConfirm().
				Title("Make this the default template?").
				Value(&isDefault),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	fields, err := cli.CollectTemplateFields()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no fields were added")
	}

	template, err := ctx.Templates.Create(name, description, fields, isDefault)
	if err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Created template %q (ID: %d)", template.Name, template.ID))
	return nil
}

func (c *CreateCmd) runFromFile(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	var def models.Template
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("invalid template file %s: %w", c.File, err)
	}

	name := def.Name
	if c.Name != "" {
		name = c.Name
	}
	description := def.Description
	if c.Description != "" {
		description = c.Description
	}

	template, err := ctx.Templates.Create(name, description, def.Fields, c.Default)
	if err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Imported template %q (ID: %d)", template.Name, template.ID))
	return nil
}
