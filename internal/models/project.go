package models

import "time"

// Project is a lightweight named entity reports may be grouped under. It has
// no dedicated CLI surface; statistics resolve project names from report data
// by convention.
type Project struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TemplateID  int64     `json:"template_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
