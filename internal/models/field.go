package models

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/constants"
	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
)

// FieldType enumerates the supported template field kinds.
type FieldType string

const (
	FieldDate      FieldType = "date"
	FieldTime      FieldType = "time"
	FieldText      FieldType = "text"
	FieldMemo      FieldType = "memo"
	FieldSelection FieldType = "selection"
)

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldDate, FieldTime, FieldText, FieldMemo, FieldSelection:
		return true
	}
	return false
}

// ParseFieldType converts a string tag into a FieldType.
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unsupported field type: %s", s)
	}
	return t, nil
}

// DateDefault enumerates the symbolic default values accepted by date fields.
type DateDefault string

const (
	DateToday     DateDefault = "today"
	DateYesterday DateDefault = "yesterday"
	DateTomorrow  DateDefault = "tomorrow"
)

// TemplateField is a single typed slot within a template. Name identifies
// the field within its template; Order only drives display and collection
// sequencing.
type TemplateField struct {
	ID           int64     `json:"-"`
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	Type         FieldType `json:"field_type"`
	Required     bool      `json:"required"`
	DefaultValue string    `json:"default_value,omitempty"`
	Options      []string  `json:"options,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty"`
	MaxLength    int       `json:"max_length,omitempty"`
	Order        int       `json:"order"`
}

// Validate checks the per-type construction constraints: selection fields
// need at least one option, text fields cannot exceed the global length cap.
func (f TemplateField) Validate() error {
	if f.Name == "" {
		return apperrors.Validation("field name is required")
	}
	if f.Label == "" {
		return apperrors.Validation("field %q: label is required", f.Name)
	}
	if !f.Type.Valid() {
		return apperrors.Validation("field %q: unsupported field type: %s", f.Name, f.Type)
	}
	if f.Type == FieldSelection && len(f.Options) == 0 {
		return apperrors.Validation("field %q: selection fields require options", f.Name)
	}
	if f.Type == FieldText && f.MaxLength > constants.MaxTextLength {
		return apperrors.Validation("field %q: text fields are capped at %d characters", f.Name, constants.MaxTextLength)
	}
	return nil
}
