package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/models"
)

// CreateProject inserts a project, assigning the generated id and creation
// timestamp to p.
func (s *Store) CreateProject(p *models.Project) error {
	now := nowUTC()
	res, err := s.db.Exec(`
		INSERT INTO projects (name, description, template_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.Name, nullable(p.Description), nullableInt(p.TemplateID), p.IsActive, formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	p.CreatedAt = now
	return nil
}

// GetProjectByName returns the project with the given name, or nil when
// absent.
func (s *Store) GetProjectByName(name string) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`
		SELECT id, name, description, template_id, is_active, created_at
		FROM projects WHERE name = ?`, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ListProjects returns all projects, optionally restricted to active ones.
func (s *Store) ListProjects(activeOnly bool) ([]*models.Project, error) {
	query := "SELECT id, name, description, template_id, is_active, created_at FROM projects"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var description sql.NullString
	var templateID sql.NullInt64
	var createdAt string

	if err := row.Scan(&p.ID, &p.Name, &description, &templateID, &p.IsActive, &createdAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.TemplateID = templateID.Int64
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
