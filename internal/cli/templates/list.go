package templates

import (
	"fmt"
	"strconv"

	"github.com/mag-rock/smart-nippo/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	templates, err := ctx.Templates.List()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		def := ""
		if t.IsDefault {
			def = "✓"
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			t.Description,
			strconv.Itoa(len(t.Fields)),
			def,
		})
	}

	fmt.Println(cli.RenderTable([]string{"ID", "NAME", "DESCRIPTION", "FIELDS", "DEFAULT"}, rows))
	return nil
}
