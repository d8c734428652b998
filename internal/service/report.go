package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mag-rock/smart-nippo/internal/constants"
	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/logger"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
)

// now is swapped out in tests that pin "today".
var now = time.Now

// ReportService enforces the business invariants around reports: an existing
// parent template on create, and at most one report per (template, date)
// pair at creation time. Field-level validation is the caller's
// responsibility; data blobs are stored verbatim.
type ReportService struct {
	store storage.Provider
}

// NewReportService creates a report service on top of the given store.
func NewReportService(store storage.Provider) *ReportService {
	return &ReportService{store: store}
}

// ResolveDate picks the canonical date used for duplicate checks: the
// explicit date if given, else a parseable data["date"] entry, else today.
func (s *ReportService) ResolveDate(reportDate string, data models.ReportData) string {
	if reportDate != "" {
		return reportDate
	}
	if v := data.Get(constants.DateFieldKey); v != "" {
		if _, err := time.Parse(constants.DateFormat, v); err == nil {
			return v
		}
	}
	return now().Format(constants.DateFormat)
}

// Create persists a new report bound to templateID. reportDate may be empty;
// the resolved date must not collide with an existing report for the same
// template.
func (s *ReportService) Create(templateID int64, data models.ReportData, reportDate string) (*models.Report, error) {
	template, err := s.store.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperrors.NotFound("template", templateID)
	}

	date := s.ResolveDate(reportDate, data)
	existing, err := s.store.FindReportByDate(templateID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("a report for %s already exists", date)
	}

	r := &models.Report{TemplateID: templateID, Data: data}
	if err := s.store.CreateReport(r); err != nil {
		return nil, err
	}
	logger.Info("Report created", "id", r.ID, "template", template.Name, "date", date)
	return r, nil
}

// Get returns the report with the given id, or nil when absent.
func (s *ReportService) Get(id int64) (*models.Report, error) {
	return s.store.GetReport(id)
}

// GetByDate returns the report for a given date. templateID scopes the
// lookup when non-zero; otherwise, when several reports share the date, the
// one belonging to the default template wins, then the lowest id. Returns
// nil when nothing matches.
func (s *ReportService) GetByDate(date string, templateID int64) (*models.Report, error) {
	if templateID != 0 {
		return s.store.FindReportByDate(templateID, date)
	}

	reports, err := s.store.FindReportsByDate(date)
	if err != nil {
		return nil, err
	}
	switch len(reports) {
	case 0:
		return nil, nil
	case 1:
		return reports[0], nil
	}

	def, err := s.store.GetDefaultTemplate()
	if err != nil {
		return nil, err
	}
	if def != nil {
		for _, r := range reports {
			if r.TemplateID == def.ID {
				return r, nil
			}
		}
	}
	// FindReportsByDate orders by id, so this tie-break is deterministic.
	return reports[0], nil
}

// Update replaces a report's data wholesale and refreshes its updated_at.
// The per-date uniqueness invariant is not re-checked here: editing a
// report's date into collision with another report is allowed.
func (s *ReportService) Update(id int64, data models.ReportData) (*models.Report, error) {
	r, err := s.store.UpdateReportData(id, data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("report", id)
		}
		return nil, err
	}
	logger.Info("Report updated", "id", id)
	return r, nil
}

// Delete removes a report. A missing id returns false without error.
func (s *ReportService) Delete(id int64) (bool, error) {
	deleted, err := s.store.DeleteReport(id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info("Report deleted", "id", id)
	}
	return deleted, nil
}

// List returns reports matching the filter.
func (s *ReportService) List(f storage.ReportFilter) ([]*models.Report, error) {
	if f.OrderBy == "" {
		f.OrderBy = storage.OrderDateDesc
	}
	return s.store.ListReports(f)
}

// Search performs a case-insensitive keyword search over the conventional
// free-text keys, most recently created first.
func (s *ReportService) Search(keyword string, limit int) ([]*models.Report, error) {
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}
	return s.store.ListReports(storage.ReportFilter{
		Keyword: keyword,
		Limit:   limit,
		OrderBy: storage.OrderCreatedDesc,
	})
}

// Monthly returns the reports of one calendar month in date order.
func (s *ReportService) Monthly(year, month int) ([]*models.Report, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.Validation("month must be between 1 and 12")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	return s.store.ListReports(storage.ReportFilter{
		StartDate: start.Format(constants.DateFormat),
		EndDate:   end.Format(constants.DateFormat),
		OrderBy:   storage.OrderDateAsc,
	})
}

// Statistics summarizes the reports in an inclusive date range. Either bound
// may be empty.
type Statistics struct {
	TotalReports  int            `json:"total_reports"`
	StartDate     string         `json:"start_date,omitempty"`
	EndDate       string         `json:"end_date,omitempty"`
	TemplatesUsed map[string]int `json:"templates_used"`
	Projects      map[string]int `json:"projects"`
}

// GetStatistics computes report counts per template name and per project
// name over the filtered set. Reports without a project value fall under the
// unclassified label.
func (s *ReportService) GetStatistics(startDate, endDate string) (*Statistics, error) {
	reports, err := s.store.ListReports(storage.ReportFilter{
		StartDate: startDate,
		EndDate:   endDate,
		OrderBy:   storage.OrderDateDesc,
	})
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalReports:  len(reports),
		StartDate:     startDate,
		EndDate:       endDate,
		TemplatesUsed: make(map[string]int),
		Projects:      make(map[string]int),
	}

	templates, err := s.store.ListTemplates()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(templates))
	for _, t := range templates {
		names[t.ID] = t.Name
	}

	for _, r := range reports {
		name := names[r.TemplateID]
		if name == "" {
			name = "unknown"
		}
		stats.TemplatesUsed[name]++

		project := r.ProjectName()
		if project == "" {
			project = constants.UnclassifiedProject
		}
		stats.Projects[project]++
	}

	return stats, nil
}
