package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mag-rock/smart-nippo/internal/constants"
	"github.com/mag-rock/smart-nippo/internal/editor"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

const customDateChoice = "__custom__"

// CollectReportData interactively prompts for every field of a template, in
// display order, and returns the validated data. existing pre-fills prompts
// when editing. Prompting is a thin wrapper: all normalization lives in the
// validation package, which is run on the full record before returning.
func CollectReportData(template *models.Template, editorCmd string, existing models.ReportData) (models.ReportData, error) {
	raw := make(models.ReportData)

	for _, field := range template.SortedFields() {
		value, err := promptField(field, editorCmd, existing.Get(field.Name))
		if err != nil {
			return nil, err
		}
		if value != "" {
			raw[field.Name] = value
		}
	}

	return validation.ReportData(raw, template.Fields)
}

func promptField(field models.TemplateField, editorCmd, current string) (string, error) {
	switch field.Type {
	case models.FieldDate:
		return promptDate(field, current)
	case models.FieldMemo:
		return promptMemo(field, editorCmd, current)
	case models.FieldSelection:
		return promptSelection(field, current)
	default:
		return promptInput(field, current)
	}
}

func promptDate(field models.TemplateField, current string) (string, error) {
	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	options := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("Today (%s)", today.Format(constants.DateFormat)), today.Format(constants.DateFormat)),
		huh.NewOption(fmt.Sprintf("Yesterday (%s)", yesterday.Format(constants.DateFormat)), yesterday.Format(constants.DateFormat)),
		huh.NewOption(fmt.Sprintf("Tomorrow (%s)", tomorrow.Format(constants.DateFormat)), tomorrow.Format(constants.DateFormat)),
		huh.NewOption("Another date", customDateChoice),
	}
	if current != "" {
		options = append([]huh.Option[string]{
			huh.NewOption(fmt.Sprintf("Current (%s)", current), current),
		}, options...)
	}

	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(field.Label).
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	if choice != customDateChoice {
		return choice, nil
	}

	var custom string
	form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(field.Label + " (YYYY-MM-DD)").
			Value(&custom).
			Validate(func(s string) error {
				if s == "" && !field.Required {
					return nil
				}
				_, err := validation.Date(s)
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return custom, nil
}

func promptMemo(field models.TemplateField, editorCmd, current string) (string, error) {
	useEditor := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Open an editor for %q?", field.Label)).
			Affirmative("Editor").
			Negative("Inline").
			Value(&useEditor),
	))
	if err := form.Run(); err != nil {
		return "", err
	}

	if useEditor {
		return editor.Edit(editorCmd, current, ".md")
	}

	value := current
	form = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(field.Label).
			Placeholder(field.Placeholder).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func promptSelection(field models.TemplateField, current string) (string, error) {
	options := make([]huh.Option[string], 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, huh.NewOption(opt, opt))
	}

	value := current
	if value == "" {
		value = field.DefaultValue
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(field.Label).
			Options(options...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}

func promptInput(field models.TemplateField, current string) (string, error) {
	value := current
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(field.Label).
			Placeholder(field.Placeholder).
			Value(&value).
			Validate(func(s string) error {
				_, err := validation.Field(s, field)
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}
