package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mag-rock/smart-nippo/internal/constants"
	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/models"
)

// now is swapped out in tests that pin "today".
var now = time.Now

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Field validates and normalizes a single raw value against its field
// definition. An empty value on a non-required field resolves to the field's
// default value, which goes through the same per-type normalization, so a
// date default of "today" comes back as a concrete date. The returned value
// is "" when the field ends up unset.
func Field(value string, field models.TemplateField) (string, error) {
	if field.Required && value == "" {
		return "", apperrors.Validation("%s is required", field.Label)
	}
	if value == "" {
		value = field.DefaultValue
		if value == "" {
			return "", nil
		}
	}

	switch field.Type {
	case models.FieldDate:
		return Date(value)
	case models.FieldTime:
		return Time(value)
	case models.FieldText:
		return text(value, field)
	case models.FieldMemo:
		return strings.TrimSpace(value), nil
	case models.FieldSelection:
		return selection(value, field)
	default:
		return "", apperrors.Validation("unsupported field type: %s", field.Type)
	}
}

// Date resolves the symbolic tokens today/yesterday/tomorrow against the
// current date and otherwise parses the value strictly as YYYY-MM-DD. The
// result is always a normalized YYYY-MM-DD string.
func Date(value string) (string, error) {
	today := now()
	switch models.DateDefault(value) {
	case models.DateToday:
		return today.Format(constants.DateFormat), nil
	case models.DateYesterday:
		return today.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	case models.DateTomorrow:
		return today.AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}

	parsed, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		return "", apperrors.Validation("date must be in YYYY-MM-DD format: %s", value)
	}
	return parsed.Format(constants.DateFormat), nil
}

// Time validates an H:MM/HH:MM value and rounds the minute to the nearest
// quarter hour, carrying into the hour (modulo 24) when rounding reaches 60.
func Time(value string) (string, error) {
	m := timePattern.FindStringSubmatch(value)
	if m == nil {
		return "", apperrors.Validation("time must be in HH:MM format: %s", value)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	rounded := int(math.Round(float64(minute)/15)) * 15
	if rounded == 60 {
		hour = (hour + 1) % 24
		rounded = 0
	}
	return fmt.Sprintf("%02d:%02d", hour, rounded), nil
}

func text(value string, field models.TemplateField) (string, error) {
	if strings.ContainsAny(value, "\n\r") {
		return "", apperrors.Validation("text fields cannot contain line breaks")
	}
	maxLength := field.MaxLength
	if maxLength == 0 {
		maxLength = constants.MaxTextLength
	}
	if len([]rune(value)) > maxLength {
		return "", apperrors.Validation("text must be at most %d characters (got %d)", maxLength, len([]rune(value)))
	}
	return strings.TrimSpace(value), nil
}

func selection(value string, field models.TemplateField) (string, error) {
	if len(field.Options) == 0 {
		return "", apperrors.Validation("no options defined for selection field")
	}
	for _, opt := range field.Options {
		if value == opt {
			return value, nil
		}
	}
	return "", apperrors.Validation("%q is not a valid option (valid options: %s)", value, strings.Join(field.Options, ", "))
}

// ReportData validates a whole record against a template's fields. All field
// errors are accumulated and, if any occurred, reported together in a single
// combined error. Fields that resolve to no value are omitted from the
// validated output.
func ReportData(data models.ReportData, fields []models.TemplateField) (models.ReportData, error) {
	validated := make(models.ReportData)
	var errs []string

	for _, field := range fields {
		value, err := Field(data.Get(field.Name), field)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", field.Label, err))
			continue
		}
		if value != "" {
			validated[field.Name] = value
		}
	}

	if len(errs) > 0 {
		return nil, apperrors.Validation("input errors:\n%s", strings.Join(errs, "\n"))
	}
	return validated, nil
}
