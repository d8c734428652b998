package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mag-rock/smart-nippo/internal/cli"
	"github.com/mag-rock/smart-nippo/internal/models"
)

type ShowCmd struct {
	ID   int64  `arg:"" optional:"" help:"Template ID (shows the default template when omitted)."`
	Name string `short:"n" help:"Look the template up by name instead."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	var template *models.Template
	var err error

	switch {
	case c.Name != "":
		template, err = ctx.Templates.GetByName(c.Name)
	case c.ID != 0:
		template, err = ctx.Templates.Get(c.ID)
	default:
		template, err = ctx.Templates.GetDefault()
		if err == nil && template == nil {
			fmt.Println("No default template is set")
			return nil
		}
	}
	if err != nil {
		return err
	}
	if template == nil {
		fmt.Println("Template not found")
		return nil
	}

	info := []string{
		fmt.Sprintf("Name: %s", template.Name),
		fmt.Sprintf("ID: %d", template.ID),
	}
	if template.Description != "" {
		info = append(info, fmt.Sprintf("Description: %s", template.Description))
	}
	if template.IsDefault {
		info = append(info, "Default template")
	}
	fmt.Println(cli.Panel("Template", info))

	rows := make([][]string, 0, len(template.Fields))
	for _, f := range template.SortedFields() {
		required := ""
		if f.Required {
			required = "✓"
		}
		fieldType := string(f.Type)
		if f.Type == models.FieldSelection && len(f.Options) > 0 {
			fieldType = fmt.Sprintf("%s (%s)", fieldType, strings.Join(f.Options, ", "))
		}
		rows = append(rows, []string{
			strconv.Itoa(f.Order),
			f.Name,
			f.Label,
			fieldType,
			required,
			f.DefaultValue,
		})
	}
	fmt.Println(cli.RenderTable([]string{"#", "NAME", "LABEL", "TYPE", "REQUIRED", "DEFAULT"}, rows))
	return nil
}
