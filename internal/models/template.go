package models

import (
	"sort"
	"time"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
)

// Template is a named, ordered schema of typed fields used to shape reports.
// At most one template is flagged as the system-wide default.
type Template struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Fields      []TemplateField `json:"fields"`
	IsDefault   bool            `json:"is_default,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// NewTemplate constructs a template, enforcing the construction-time
// invariants: every field passes its own validation and field names are
// unique within the template.
func NewTemplate(name, description string, fields []TemplateField, isDefault bool) (*Template, error) {
	t := &Template{
		Name:        name,
		Description: description,
		Fields:      fields,
		IsDefault:   isDefault,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the template invariants without touching persistence.
func (t *Template) Validate() error {
	if t.Name == "" {
		return apperrors.Validation("template name is required")
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return apperrors.Validation("duplicate field name: %s", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// SortedFields returns the fields ordered by their display order.
func (t *Template) SortedFields() []TemplateField {
	fields := make([]TemplateField, len(t.Fields))
	copy(fields, t.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

// Field returns the field with the given name, if present.
func (t *Template) Field(name string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return TemplateField{}, false
}

// DefaultTemplate returns the standard daily-report template seeded on init.
func DefaultTemplate() *Template {
	return &Template{
		Name:        "standard",
		Description: "Standard daily report template",
		IsDefault:   true,
		Fields: []TemplateField{
			{Name: "date", Label: "Date", Type: FieldDate, Required: true, DefaultValue: string(DateToday), Order: 1},
			{Name: "project", Label: "Project", Type: FieldText, Required: true, Placeholder: "e.g. Project A", MaxLength: 100, Order: 2},
			{Name: "start_time", Label: "Start time", Type: FieldTime, DefaultValue: "09:00", Order: 3},
			{Name: "end_time", Label: "End time", Type: FieldTime, DefaultValue: "18:00", Order: 4},
			{Name: "content", Label: "Work done", Type: FieldMemo, Required: true, Placeholder: "What did you work on today?", Order: 5},
			{Name: "progress", Label: "Progress", Type: FieldSelection, Required: true, DefaultValue: "in progress", Options: []string{"done", "in progress", "not started"}, Order: 6},
			{Name: "issues", Label: "Issues", Type: FieldMemo, Placeholder: "Any problems or blockers", Order: 7},
			{Name: "tomorrow_plan", Label: "Plan for tomorrow", Type: FieldMemo, Placeholder: "What is planned for tomorrow", Order: 8},
			{Name: "notes", Label: "Notes", Type: FieldMemo, Placeholder: "Anything else worth keeping", Order: 9},
		},
	}
}
