package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/models"
)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestDateTokens(t *testing.T) {
	pinNow(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		value string
		want  string
	}{
		{"today", "2026-03-01"},
		{"yesterday", "2026-02-28"},
		{"tomorrow", "2026-03-02"},
		{"2025-12-31", "2025-12-31"},
	}
	for _, tt := range tests {
		got, err := Date(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got)
	}
}

func TestDateRejectsMalformed(t *testing.T) {
	for _, value := range []string{"2026/03/01", "03-01-2026", "2026-13-01", "next week", ""} {
		_, err := Date(value)
		assert.Error(t, err, value)
		assert.True(t, apperrors.IsValidation(err), value)
	}
}

func TestTimeRounding(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"09:00", "09:00"},
		{"09:07", "09:00"},
		{"09:08", "09:15"},
		{"09:23", "09:30"},
		{"9:05", "09:00"},
		{"09:53", "10:00"},
		{"23:53", "00:00"},
		{"00:00", "00:00"},
	}
	for _, tt := range tests {
		got, err := Time(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestTimeRoundingIsIdempotent(t *testing.T) {
	for _, value := range []string{"09:07", "09:08", "23:53", "11:38"} {
		once, err := Time(value)
		require.NoError(t, err)
		twice, err := Time(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestTimeRejectsMalformed(t *testing.T) {
	for _, value := range []string{"24:00", "9:5", "09:60", "0900", "morning", ""} {
		_, err := Time(value)
		assert.Error(t, err, value)
	}
}

func TestFieldRequired(t *testing.T) {
	field := models.TemplateField{Name: "content", Label: "Content", Type: models.FieldText, Required: true}
	_, err := Field("", field)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content is required")
	assert.True(t, apperrors.IsValidation(err))
}

func TestFieldRequiredIgnoresDefault(t *testing.T) {
	field := models.TemplateField{Name: "content", Label: "Content", Type: models.FieldText, Required: true, DefaultValue: "n/a"}
	_, err := Field("", field)
	assert.Error(t, err)
}

func TestFieldEmptyResolvesDefault(t *testing.T) {
	pinNow(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	date := models.TemplateField{Name: "date", Label: "Date", Type: models.FieldDate, DefaultValue: "today"}
	got, err := Field("", date)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got)

	plain := models.TemplateField{Name: "notes", Label: "Notes", Type: models.FieldMemo}
	got, err = Field("", plain)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFieldText(t *testing.T) {
	field := models.TemplateField{Name: "content", Label: "Content", Type: models.FieldText}

	got, err := Field("  worked on parser  ", field)
	require.NoError(t, err)
	assert.Equal(t, "worked on parser", got)

	_, err = Field("line one\nline two", field)
	assert.Error(t, err)

	_, err = Field(strings.Repeat("x", 256), field)
	assert.Error(t, err)

	short := models.TemplateField{Name: "tag", Label: "Tag", Type: models.FieldText, MaxLength: 5}
	_, err = Field("toolong", short)
	assert.Error(t, err)

	// Length counts runes, not bytes.
	got, err = Field(strings.Repeat("あ", 255), field)
	require.NoError(t, err)
	assert.Len(t, []rune(got), 255)
}

func TestFieldSelection(t *testing.T) {
	field := models.TemplateField{
		Name: "progress", Label: "Progress", Type: models.FieldSelection,
		Options: []string{"done", "in progress", "not started"},
	}

	got, err := Field("done", field)
	require.NoError(t, err)
	assert.Equal(t, "done", got)

	_, err = Field("Done", field)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid option")
}

func TestFieldMemoKeepsLineBreaks(t *testing.T) {
	field := models.TemplateField{Name: "notes", Label: "Notes", Type: models.FieldMemo}
	got, err := Field("line one\nline two\n", field)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestReportDataAccumulatesErrors(t *testing.T) {
	fields := []models.TemplateField{
		{Name: "date", Label: "Date", Type: models.FieldDate, Required: true},
		{Name: "start_time", Label: "Start time", Type: models.FieldTime},
		{Name: "content", Label: "Content", Type: models.FieldText, Required: true},
	}

	_, err := ReportData(models.ReportData{"start_time": "25:00"}, fields)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	msg := err.Error()
	assert.Contains(t, msg, "input errors:")
	assert.Contains(t, msg, "Date: ")
	assert.Contains(t, msg, "Start time: ")
	assert.Contains(t, msg, "Content: ")
}

func TestReportDataOmitsUnsetFields(t *testing.T) {
	fields := []models.TemplateField{
		{Name: "date", Label: "Date", Type: models.FieldDate, Required: true},
		{Name: "start_time", Label: "Start time", Type: models.FieldTime},
		{Name: "notes", Label: "Notes", Type: models.FieldMemo},
	}

	data, err := ReportData(models.ReportData{"date": "2026-03-01", "start_time": "9:07"}, fields)
	require.NoError(t, err)
	assert.Equal(t, models.ReportData{"date": "2026-03-01", "start_time": "09:00"}, data)
	_, ok := data["notes"]
	assert.False(t, ok)
}
