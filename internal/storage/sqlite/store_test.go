package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func testTemplate(name string, isDefault bool) *models.Template {
	return &models.Template{
		Name:      name,
		IsDefault: isDefault,
		Fields: []models.TemplateField{
			{Name: "date", Label: "Date", Type: models.FieldDate, Required: true, Order: 1},
			{Name: "content", Label: "Content", Type: models.FieldMemo, Order: 2},
			{Name: "progress", Label: "Progress", Type: models.FieldSelection, Options: []string{"done", "in progress"}, Order: 3},
		},
	}
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data.db"))
	err := store.Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestInitIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Init())
}

func TestTemplateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	created := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(created, true))
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetTemplate(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "daily", got.Name)
	assert.True(t, got.IsDefault)
	require.Len(t, got.Fields, 3)
	assert.Equal(t, []string{"done", "in progress"}, got.Fields[2].Options)

	byName, err := store.GetTemplateByName("daily")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	missing, err := store.GetTemplate(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFieldsComeBackInDisplayOrder(t *testing.T) {
	store := newTestStore(t)

	template := &models.Template{
		Name: "scrambled",
		Fields: []models.TemplateField{
			{Name: "third", Label: "Third", Type: models.FieldMemo, Order: 3},
			{Name: "first", Label: "First", Type: models.FieldDate, Order: 1},
			{Name: "second", Label: "Second", Type: models.FieldTime, Order: 2},
		},
	}
	require.NoError(t, store.CreateTemplate(template, false))

	got, err := store.GetTemplate(template.ID)
	require.NoError(t, err)
	names := []string{got.Fields[0].Name, got.Fields[1].Name, got.Fields[2].Name}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestCreateTemplateClearsPreviousDefault(t *testing.T) {
	store := newTestStore(t)

	first := testTemplate("first", true)
	require.NoError(t, store.CreateTemplate(first, true))
	second := testTemplate("second", true)
	require.NoError(t, store.CreateTemplate(second, true))

	def, err := store.GetDefaultTemplate()
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	old, err := store.GetTemplate(first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsDefault)
}

func TestUpdateTemplateReplacesFields(t *testing.T) {
	store := newTestStore(t)

	template := testTemplate("daily", false)
	require.NoError(t, store.CreateTemplate(template, false))

	template.Name = "renamed"
	template.Fields = []models.TemplateField{
		{Name: "only", Label: "Only", Type: models.FieldText, Order: 1},
	}
	require.NoError(t, store.UpdateTemplate(template, true, false))

	got, err := store.GetTemplate(template.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "only", got.Fields[0].Name)
}

func TestSetDefaultTemplate(t *testing.T) {
	store := newTestStore(t)

	first := testTemplate("first", true)
	require.NoError(t, store.CreateTemplate(first, true))
	second := testTemplate("second", false)
	require.NoError(t, store.CreateTemplate(second, false))

	require.NoError(t, store.SetDefaultTemplate(second.ID))
	def, err := store.GetDefaultTemplate()
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	err = store.SetDefaultTemplate(9999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteTemplate(t *testing.T) {
	store := newTestStore(t)

	template := testTemplate("daily", false)
	require.NoError(t, store.CreateTemplate(template, false))

	deleted, err := store.DeleteTemplate(template.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteTemplate(template.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func createReport(t *testing.T, store *Store, templateID int64, data models.ReportData) *models.Report {
	t.Helper()
	r := &models.Report{TemplateID: templateID, Data: data}
	require.NoError(t, store.CreateReport(r))
	return r
}

func TestReportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	template := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(template, true))

	created := createReport(t, store, template.ID, models.ReportData{
		"date":    "2026-03-01",
		"project": "Apollo",
		"content": "wired the parser",
	})
	assert.NotZero(t, created.ID)

	got, err := store.GetReport(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-01", got.Date())
	assert.Equal(t, "Apollo", got.ProjectName())
	assert.Equal(t, template.ID, got.TemplateID)

	missing, err := store.GetReport(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindReportByDate(t *testing.T) {
	store := newTestStore(t)
	template := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(template, true))

	created := createReport(t, store, template.ID, models.ReportData{"date": "2026-03-01"})

	got, err := store.FindReportByDate(template.ID, "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	none, err := store.FindReportByDate(template.ID, "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestListReportsFilters(t *testing.T) {
	store := newTestStore(t)
	daily := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(daily, true))
	weekly := testTemplate("weekly", false)
	require.NoError(t, store.CreateTemplate(weekly, false))

	createReport(t, store, daily.ID, models.ReportData{"date": "2026-03-01", "project": "Apollo", "content": "fixed the scanner"})
	createReport(t, store, daily.ID, models.ReportData{"date": "2026-03-02", "project": "Gemini", "content": "code review"})
	createReport(t, store, weekly.ID, models.ReportData{"date": "2026-03-03", "project": "Apollo", "notes": "weekly summary"})

	t.Run("date range is inclusive", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{StartDate: "2026-03-01", EndDate: "2026-03-02", OrderBy: storage.OrderDateAsc})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2026-03-01", got[0].Date())
		assert.Equal(t, "2026-03-02", got[1].Date())
	})

	t.Run("single day via equal bounds", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{StartDate: "2026-03-02", EndDate: "2026-03-02"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2026-03-02", got[0].Date())
	})

	t.Run("template filter", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{TemplateID: weekly.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, weekly.ID, got[0].TemplateID)
	})

	t.Run("project filter is case-insensitive substring", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{ProjectName: "apo"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("keyword searches free-text keys", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{Keyword: "SCANNER"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2026-03-01", got[0].Date())

		got, err = store.ListReports(storage.ReportFilter{Keyword: "weekly summary"})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("keyword does not match project", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{Keyword: "Gemini"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("limit caps results", func(t *testing.T) {
		got, err := store.ListReports(storage.ReportFilter{Limit: 2, OrderBy: storage.OrderDateDesc})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2026-03-03", got[0].Date())
	})
}

func TestUpdateReportData(t *testing.T) {
	store := newTestStore(t)
	template := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(template, true))

	created := createReport(t, store, template.ID, models.ReportData{"date": "2026-03-01", "content": "draft"})

	updated, err := store.UpdateReportData(created.ID, models.ReportData{"date": "2026-03-01", "content": "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.FieldValue("content"))

	_, err = store.UpdateReportData(9999, models.ReportData{"date": "2026-03-01"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteReport(t *testing.T) {
	store := newTestStore(t)
	template := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(template, true))

	created := createReport(t, store, template.ID, models.ReportData{"date": "2026-03-01"})

	deleted, err := store.DeleteReport(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteReport(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCountReportsForTemplate(t *testing.T) {
	store := newTestStore(t)
	template := testTemplate("daily", true)
	require.NoError(t, store.CreateTemplate(template, true))

	n, err := store.CountReportsForTemplate(template.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	createReport(t, store, template.ID, models.ReportData{"date": "2026-03-01"})
	createReport(t, store, template.ID, models.ReportData{"date": "2026-03-02"})

	n, err = store.CountReportsForTemplate(template.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProjects(t *testing.T) {
	store := newTestStore(t)

	active := &models.Project{Name: "Apollo", IsActive: true}
	require.NoError(t, store.CreateProject(active))
	dormant := &models.Project{Name: "Mercury", IsActive: false}
	require.NoError(t, store.CreateProject(dormant))

	got, err := store.GetProjectByName("Apollo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)

	missing, err := store.GetProjectByName("Artemis")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.ListProjects(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := store.ListProjects(true)
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "Apollo", activeOnly[0].Name)
}
