package storage

import (
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/models"
)

// ReportOrder selects the sort key and direction for report listings.
type ReportOrder string

const (
	OrderDateAsc     ReportOrder = "date_asc"
	OrderDateDesc    ReportOrder = "date_desc"
	OrderCreatedAsc  ReportOrder = "created_asc"
	OrderCreatedDesc ReportOrder = "created_desc"
)

// ParseReportOrder validates a report order tag, defaulting to date_desc for
// the empty string.
func ParseReportOrder(s string) (ReportOrder, error) {
	if s == "" {
		return OrderDateDesc, nil
	}
	o := ReportOrder(s)
	switch o {
	case OrderDateAsc, OrderDateDesc, OrderCreatedAsc, OrderCreatedDesc:
		return o, nil
	}
	return "", fmt.Errorf("invalid report order: %s (valid: date_asc, date_desc, created_asc, created_desc)", s)
}

// ReportFilter narrows report listings. All set filters are AND-composed.
// Dates are inclusive ISO YYYY-MM-DD strings compared against the report's
// "date" data entry. ProjectName and Keyword are case-insensitive substring
// matches. A zero Limit means unlimited.
type ReportFilter struct {
	StartDate   string
	EndDate     string
	TemplateID  int64
	ProjectName string
	Keyword     string
	Limit       int
	OrderBy     ReportOrder
}

// Provider is the persistence surface the services are written against.
// Every method that performs more than one write does so in a single
// transaction; partial writes are never observable.
type Provider interface {
	Init() error
	Load() error
	Close() error
	Path() string

	// Templates
	CreateTemplate(t *models.Template, clearDefault bool) error
	GetTemplate(id int64) (*models.Template, error)
	GetTemplateByName(name string) (*models.Template, error)
	GetDefaultTemplate() (*models.Template, error)
	ListTemplates() ([]*models.Template, error)
	UpdateTemplate(t *models.Template, replaceFields, clearDefault bool) error
	DeleteTemplate(id int64) (bool, error)
	SetDefaultTemplate(id int64) error
	CountReportsForTemplate(id int64) (int, error)

	// Reports
	CreateReport(r *models.Report) error
	GetReport(id int64) (*models.Report, error)
	FindReportByDate(templateID int64, date string) (*models.Report, error)
	FindReportsByDate(date string) ([]*models.Report, error)
	ListReports(f ReportFilter) ([]*models.Report, error)
	UpdateReportData(id int64, data models.ReportData) (*models.Report, error)
	DeleteReport(id int64) (bool, error)

	// Projects
	CreateProject(p *models.Project) error
	GetProjectByName(name string) (*models.Project, error)
	ListProjects(activeOnly bool) ([]*models.Project, error)
}
