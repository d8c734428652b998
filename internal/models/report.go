package models

import (
	"time"

	"github.com/mag-rock/smart-nippo/internal/constants"
)

// ReportData maps field names to their collected values. The mapping is
// schemaless at the storage layer: keys follow whatever template defined the
// report at creation time, and an absent or empty value means "not set".
type ReportData map[string]string

// Get returns the value for name, or the empty string when unset.
func (d ReportData) Get(name string) string {
	if d == nil {
		return ""
	}
	return d[name]
}

// Clone returns a shallow copy of the data map.
func (d ReportData) Clone() ReportData {
	out := make(ReportData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Report is one dated document of field values, bound to the template that
// defined its field set at creation time. Later template edits do not touch
// existing reports.
type Report struct {
	ID         int64      `json:"id,omitempty"`
	TemplateID int64      `json:"template_id"`
	ProjectID  int64      `json:"project_id,omitempty"`
	Data       ReportData `json:"data"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at,omitempty"`
}

// FieldValue returns the stored value for the named field, or "" when unset.
func (r *Report) FieldValue(name string) string {
	return r.Data.Get(name)
}

// Date returns the conventional "date" entry. Templates without a date field
// yield "".
func (r *Report) Date() string {
	return r.FieldValue(constants.DateFieldKey)
}

// ProjectName returns the conventional "project" entry. Templates without a
// project field yield "".
func (r *Report) ProjectName() string {
	return r.FieldValue(constants.ProjectFieldKey)
}
