package templates

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
)

type ExportCmd struct {
	ID     int64  `arg:"" optional:"" help:"Template ID (exports the default template when omitted)."`
	Output string `short:"o" help:"Output file path (stdout when omitted)."`
}

// exportedTemplate strips persistence-assigned attributes so the export can
// be re-imported as a new template.
type exportedTemplate struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Fields      []models.TemplateField `json:"fields"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	var template *models.Template
	var err error

	if c.ID == 0 {
		template, err = ctx.Templates.GetDefault()
		if err == nil && template == nil {
			fmt.Println("No default template is set")
			return nil
		}
	} else {
		template, err = ctx.Templates.Get(c.ID)
	}
	if err != nil {
		return err
	}
	if template == nil {
		fmt.Println("Template not found")
		return nil
	}

	out, err := json.MarshalIndent(exportedTemplate{
		Name:        template.Name,
		Description: template.Description,
		Fields:      template.SortedFields(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Output, err)
		}
		fmt.Println(cli.Confirmed("Exported template to %s", c.Output))
		return nil
	}

	fmt.Println(string(out))
	return nil
}
