package reports

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

type CreateCmd struct {
	Template int64  `short:"t" help:"Template ID to use (prompted when omitted)."`
	Date     string `short:"d" help:"Report date (YYYY-MM-DD)."`
}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	if c.Date != "" {
		normalized, err := validation.Date(c.Date)
		if err != nil {
			return err
		}
		c.Date = normalized
	}

	template, err := c.pickTemplate(ctx)
	if err != nil {
		return err
	}

	// Surface a duplicate date before the user fills in the whole form.
	if c.Date != "" {
		existing, err := ctx.Reports.GetByDate(c.Date, template.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("a report for %s already exists (ID: %d)", c.Date, existing.ID)
		}
	}

	data, err := cli.CollectReportData(template, ctx.Config.Editor.Command, nil)
	if err != nil {
		return err
	}

	report, err := ctx.Reports.Create(template.ID, data, c.Date)
	if err != nil {
		return err
	}
	fmt.Println(cli.Confirmed("Created report %d for %s", report.ID, ctx.Reports.ResolveDate(c.Date, data)))
	return nil
}

func (c *CreateCmd) pickTemplate(ctx *cli.Context) (*models.Template, error) {
	if c.Template != 0 {
		template, err := ctx.Templates.Get(c.Template)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, fmt.Errorf("template %d not found", c.Template)
		}
		return template, nil
	}

	templates, err := ctx.Templates.List()
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates registered, run 'smart-nippo template create' first")
	}
	if len(templates) == 1 {
		return templates[0], nil
	}

	// Default template first.
	options := make([]huh.Option[int64], 0, len(templates))
	byID := make(map[int64]*models.Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
		label := t.Name
		if t.IsDefault {
			label += " (default)"
			options = append([]huh.Option[int64]{huh.NewOption(label, t.ID)}, options...)
			continue
		}
		options = append(options, huh.NewOption(label, t.ID))
	}

	var chosen int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title("Template").
			Options(options...).
			Value(&chosen),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}
	return byID[chosen], nil
}
