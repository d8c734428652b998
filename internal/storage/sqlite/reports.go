package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mag-rock/smart-nippo/internal/constants"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
)

const reportColumns = "id, template_id, project_id, data, created_at, updated_at"

// CreateReport inserts a report, assigning the generated id and timestamps
// to r. The data map is serialized verbatim as a JSON object string.
func (s *Store) CreateReport(r *models.Report) error {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal report data: %w", err)
	}

	now := nowUTC()
	res, err := s.db.Exec(`
		INSERT INTO reports (template_id, project_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.TemplateID, nullableInt(r.ProjectID), string(raw), formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	if r.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// GetReport returns the report with the given id, or nil when absent.
func (s *Store) GetReport(id int64) (*models.Report, error) {
	r, err := scanReport(s.db.QueryRow("SELECT "+reportColumns+" FROM reports WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// FindReportByDate returns the report for the (templateID, date) pair, or
// nil when absent. Ties (which the create path forbids) break to lowest id.
func (s *Store) FindReportByDate(templateID int64, date string) (*models.Report, error) {
	r, err := scanReport(s.db.QueryRow(`
		SELECT `+reportColumns+` FROM reports
		WHERE template_id = ? AND json_extract(data, '$.date') = ?
		ORDER BY id LIMIT 1`, templateID, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// FindReportsByDate returns all reports whose data date equals the given
// day, ordered by id.
func (s *Store) FindReportsByDate(date string) ([]*models.Report, error) {
	return s.queryReports(`
		SELECT `+reportColumns+` FROM reports
		WHERE json_extract(data, '$.date') = ?
		ORDER BY id`, date)
}

// ListReports returns reports matching the filter. All filters are
// AND-composed; date bounds are inclusive string comparisons on the JSON
// "date" entry, which sorts chronologically for ISO dates.
func (s *Store) ListReports(f storage.ReportFilter) ([]*models.Report, error) {
	query := "SELECT " + reportColumns + " FROM reports"
	var conds []string
	var args []any

	if f.StartDate != "" {
		conds = append(conds, "json_extract(data, '$.date') >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "json_extract(data, '$.date') <= ?")
		args = append(args, f.EndDate)
	}
	if f.TemplateID != 0 {
		conds = append(conds, "template_id = ?")
		args = append(args, f.TemplateID)
	}
	if f.ProjectName != "" {
		conds = append(conds, "lower(coalesce(json_extract(data, '$.project'), '')) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.ProjectName)+"%")
	}
	if f.Keyword != "" {
		var ors []string
		for _, key := range constants.KeywordSearchKeys {
			ors = append(ors, fmt.Sprintf("lower(coalesce(json_extract(data, '$.%s'), '')) LIKE ?", key))
			args = append(args, "%"+strings.ToLower(f.Keyword)+"%")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// Secondary sort on id keeps equal-key results deterministic.
	switch f.OrderBy {
	case storage.OrderDateAsc:
		query += " ORDER BY json_extract(data, '$.date') ASC, id ASC"
	case storage.OrderCreatedAsc:
		query += " ORDER BY created_at ASC, id ASC"
	case storage.OrderCreatedDesc:
		query += " ORDER BY created_at DESC, id DESC"
	default:
		query += " ORDER BY json_extract(data, '$.date') DESC, id DESC"
	}

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	return s.queryReports(query, args...)
}

func (s *Store) queryReports(query string, args ...any) ([]*models.Report, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func scanReport(row rowScanner) (*models.Report, error) {
	var r models.Report
	var projectID sql.NullInt64
	var data, createdAt, updatedAt string

	if err := row.Scan(&r.ID, &r.TemplateID, &projectID, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	r.ProjectID = projectID.Int64
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)

	if err := json.Unmarshal([]byte(data), &r.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report data: %w", err)
	}
	return &r, nil
}

// UpdateReportData replaces a report's data wholesale and refreshes its
// updated_at timestamp. Returns sql.ErrNoRows when the id does not exist.
func (s *Store) UpdateReportData(id int64, data models.ReportData) (*models.Report, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report data: %w", err)
	}

	res, err := s.db.Exec("UPDATE reports SET data = ?, updated_at = ? WHERE id = ?",
		string(raw), formatTime(nowUTC()), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sql.ErrNoRows
	}
	return s.GetReport(id)
}

// DeleteReport removes a report. Returns false when the id does not exist.
func (s *Store) DeleteReport(id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
