package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
	"github.com/mag-rock/smart-nippo/internal/validation"
)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func newReportFixture(t *testing.T) (*TemplateService, *ReportService, *models.Template) {
	t.Helper()
	store := newTestStore(t)
	templates := NewTemplateService(store)
	reports := NewReportService(store)

	template, err := templates.Create("daily", "", dailyFields(), true)
	require.NoError(t, err)
	return templates, reports, template
}

func TestReportCreateRequiresTemplate(t *testing.T) {
	_, reports, _ := newReportFixture(t)

	_, err := reports.Create(9999, models.ReportData{"date": "2026-03-01"}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReportCreateRejectsDuplicateDate(t *testing.T) {
	_, reports, template := newReportFixture(t)

	_, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)

	_, err = reports.Create(template.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "2026-03-01")
}

func TestReportCreateAllowsSameDateAcrossTemplates(t *testing.T) {
	templates, reports, daily := newReportFixture(t)

	weekly, err := templates.Create("weekly", "", dailyFields(), false)
	require.NoError(t, err)

	_, err = reports.Create(daily.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
	_, err = reports.Create(weekly.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
}

func TestResolveDate(t *testing.T) {
	pinNow(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	_, reports, _ := newReportFixture(t)

	assert.Equal(t, "2026-02-10", reports.ResolveDate("2026-02-10", models.ReportData{"date": "2026-01-01"}))
	assert.Equal(t, "2026-01-01", reports.ResolveDate("", models.ReportData{"date": "2026-01-01"}))
	assert.Equal(t, "2026-03-01", reports.ResolveDate("", models.ReportData{"date": "not a date"}))
	assert.Equal(t, "2026-03-01", reports.ResolveDate("", nil))
}

func TestGetByDatePrefersDefaultTemplate(t *testing.T) {
	templates, reports, daily := newReportFixture(t)

	weekly, err := templates.Create("weekly", "", dailyFields(), false)
	require.NoError(t, err)

	// Lower id belongs to the non-default template.
	onWeekly, err := reports.Create(weekly.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
	onDaily, err := reports.Create(daily.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)

	got, err := reports.GetByDate("2026-03-01", 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, onDaily.ID, got.ID)

	scoped, err := reports.GetByDate("2026-03-01", weekly.ID)
	require.NoError(t, err)
	require.NotNil(t, scoped)
	assert.Equal(t, onWeekly.ID, scoped.ID)

	none, err := reports.GetByDate("2026-03-02", 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetByDateTieBreaksToLowestID(t *testing.T) {
	templates, reports, daily := newReportFixture(t)

	weekly, err := templates.Create("weekly", "", dailyFields(), false)
	require.NoError(t, err)
	monthly, err := templates.Create("monthly", "", dailyFields(), false)
	require.NoError(t, err)

	// Neither report belongs to the default template.
	first, err := reports.Create(weekly.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
	_, err = reports.Create(monthly.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
	_ = daily

	got, err := reports.GetByDate("2026-03-01", 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestReportUpdate(t *testing.T) {
	_, reports, template := newReportFixture(t)

	created, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-01", "content": "draft"}, "")
	require.NoError(t, err)

	updated, err := reports.Update(created.ID, models.ReportData{"date": "2026-03-01", "content": "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.FieldValue("content"))

	_, err = reports.Update(9999, models.ReportData{"date": "2026-03-01"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestReportUpdateMayCollideOnDate(t *testing.T) {
	_, reports, template := newReportFixture(t)

	_, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)
	second, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-02"}, "")
	require.NoError(t, err)

	// Editing a report's date into an occupied day is allowed.
	_, err = reports.Update(second.ID, models.ReportData{"date": "2026-03-01"})
	assert.NoError(t, err)
}

func TestReportDelete(t *testing.T) {
	_, reports, template := newReportFixture(t)

	created, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-01"}, "")
	require.NoError(t, err)

	deleted, err := reports.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = reports.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMonthly(t *testing.T) {
	_, reports, template := newReportFixture(t)

	for _, date := range []string{"2025-12-01", "2025-12-31", "2026-01-01"} {
		_, err := reports.Create(template.ID, models.ReportData{"date": date}, "")
		require.NoError(t, err)
	}

	got, err := reports.Monthly(2025, 12)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-12-01", got[0].Date())
	assert.Equal(t, "2025-12-31", got[1].Date())

	_, err = reports.Monthly(2025, 13)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSearch(t *testing.T) {
	_, reports, template := newReportFixture(t)

	_, err := reports.Create(template.ID, models.ReportData{"date": "2026-03-01", "content": "reviewed the scanner"}, "")
	require.NoError(t, err)
	_, err = reports.Create(template.ID, models.ReportData{"date": "2026-03-02", "content": "meetings"}, "")
	require.NoError(t, err)

	got, err := reports.Search("scanner", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-01", got[0].Date())
}

func TestGetStatistics(t *testing.T) {
	templates, reports, daily := newReportFixture(t)

	weekly, err := templates.Create("weekly", "", dailyFields(), false)
	require.NoError(t, err)

	_, err = reports.Create(daily.ID, models.ReportData{"date": "2026-03-01", "project": "Apollo"}, "")
	require.NoError(t, err)
	_, err = reports.Create(daily.ID, models.ReportData{"date": "2026-03-02", "project": "Apollo"}, "")
	require.NoError(t, err)
	_, err = reports.Create(weekly.ID, models.ReportData{"date": "2026-03-03"}, "")
	require.NoError(t, err)

	stats, err := reports.GetStatistics("", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, map[string]int{"daily": 2, "weekly": 1}, stats.TemplatesUsed)
	assert.Equal(t, map[string]int{"Apollo": 2, "unclassified": 1}, stats.Projects)

	ranged, err := reports.GetStatistics("2026-03-02", "2026-03-03")
	require.NoError(t, err)
	assert.Equal(t, 2, ranged.TotalReports)
}

func TestCreateLookupDeleteLifecycle(t *testing.T) {
	store := newTestStore(t)
	templates := NewTemplateService(store)
	reports := NewReportService(store)

	fields := []models.TemplateField{
		{Name: "date", Label: "Date", Type: models.FieldDate, Required: true, Order: 1},
		{Name: "content", Label: "Content", Type: models.FieldMemo, Required: true, Order: 2},
	}
	template, err := templates.Create("minimal", "", fields, false)
	require.NoError(t, err)

	created, err := reports.Create(template.ID, models.ReportData{"date": "2025-08-06", "content": "x"}, "")
	require.NoError(t, err)

	got, err := reports.GetByDate("2025-08-06", template.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	_, err = reports.Create(template.ID, models.ReportData{"date": "2025-08-06", "content": "y"}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	deleted, err := reports.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := reports.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// Exercises the full create, collect, list and edit flow the way the CLI
// drives it, with validated data going in and filters coming back out.
func TestDailyReportFlow(t *testing.T) {
	pinNow(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	store := newTestStore(t)
	templates := NewTemplateService(store)
	reports := NewReportService(store)

	template, err := templates.SeedDefault()
	require.NoError(t, err)

	raw := models.ReportData{
		"date":       "2026-03-01",
		"project":    "Apollo",
		"start_time": "9:07",
		"end_time":   "18:23",
		"content":    "implemented the list filters",
		"progress":   "in progress",
	}
	data, err := validation.ReportData(raw, template.Fields)
	require.NoError(t, err)
	assert.Equal(t, "09:00", data["start_time"])
	assert.Equal(t, "18:30", data["end_time"])

	created, err := reports.Create(template.ID, data, "")
	require.NoError(t, err)

	// A second report for the same day on the same template is refused.
	_, err = reports.Create(template.ID, data, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	listed, err := reports.List(storage.ReportFilter{StartDate: "2026-03-01", EndDate: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	edited := listed[0].Data.Clone()
	edited["progress"] = "done"
	validated, err := validation.ReportData(edited, template.Fields)
	require.NoError(t, err)

	updated, err := reports.Update(created.ID, validated)
	require.NoError(t, err)
	assert.Equal(t, "done", updated.FieldValue("progress"))
	assert.Equal(t, "2026-03-01", updated.Date())
}
