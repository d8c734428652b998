package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/constants"
	"github.com/mag-rock/smart-nippo/internal/models"
)

// CollectTemplateFields interactively builds a template's field list, one
// field at a time, until an empty field name is entered.
func CollectTemplateFields() ([]models.TemplateField, error) {
	var fields []models.TemplateField

	for order := 1; ; order++ {
		fmt.Printf("\nField %d %s\n", order, Dim("(leave the name empty to finish)"))

		field, done, err := collectOneField(order)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		fields = append(fields, field)
	}

	return fields, nil
}

func collectOneField(order int) (models.TemplateField, bool, error) {
	field := models.TemplateField{Order: order, Required: true}

	var fieldType models.FieldType
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Field name").
			Placeholder("e.g. date, project").
			Value(&field.Name),
	))
	if err := form.Run(); err != nil {
		return field, false, err
	}
	if strings.TrimSpace(field.Name) == "" {
		return field, true, nil
	}
	field.Name = strings.TrimSpace(field.Name)

	form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Label").
			Placeholder(field.Name).
			Value(&field.Label),
		huh.NewSelect[models.FieldType]().
			Title("Field type").
			Options(
				huh.NewOption("date", models.FieldDate),
				huh.NewOption("time", models.FieldTime),
				huh.NewOption("text (single line)", models.FieldText),
				huh.NewOption("memo (multi line)", models.FieldMemo),
				huh.NewOption("selection", models.FieldSelection),
			).
			Value(&fieldType),
		huh.NewConfirm().
			Title("Required?").
			Value(&field.Required),
		huh.NewInput().
			Title("Default value (optional)").
			Value(&field.DefaultValue),
	))
	if err := form.Run(); err != nil {
		return field, false, err
	}
	field.Type = fieldType
	if field.Label == "" {
		field.Label = field.Name
	}

	switch fieldType {
	case models.FieldText:
		var maxLength, placeholder string
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Max length (optional, up to %d)", constants.MaxTextLength)).
				Value(&maxLength).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if n < 1 || n > constants.MaxTextLength {
						return fmt.Errorf("must be between 1 and %d", constants.MaxTextLength)
					}
					return nil
				}),
			huh.NewInput().
				Title("Placeholder (optional)").
				Value(&placeholder),
		))
		if err := form.Run(); err != nil {
			return field, false, err
		}
		if maxLength != "" {
			field.MaxLength, _ = strconv.Atoi(maxLength)
		}
		field.Placeholder = placeholder

	case models.FieldMemo:
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Placeholder (optional)").
				Value(&field.Placeholder),
		))
		if err := form.Run(); err != nil {
			return field, false, err
		}

	case models.FieldSelection:
		var options string
		form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Options (comma separated)").
				Placeholder("e.g. done,in progress,not started").
				Value(&options).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("selection fields require at least one option")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return field, false, err
		}
		for _, opt := range strings.Split(options, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				field.Options = append(field.Options, opt)
			}
		}
	}

	return field, false, nil
}
