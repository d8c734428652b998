package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mag-rock/smart-nippo/internal/models"
)

const templateColumns = "id, name, description, is_default, created_at, updated_at"

// CreateTemplate inserts a template and its fields in one transaction,
// assigning the generated id and timestamps to t. When clearDefault is set,
// every other template loses its default flag first, so exactly one default
// holds post-commit.
func (s *Store) CreateTemplate(t *models.Template, clearDefault bool) error {
	return s.withTx(func(tx *sql.Tx) error {
		if clearDefault {
			if _, err := tx.Exec("UPDATE templates SET is_default = 0 WHERE is_default = 1"); err != nil {
				return fmt.Errorf("failed to clear default flag: %w", err)
			}
		}

		now := nowUTC()
		res, err := tx.Exec(`
			INSERT INTO templates (name, description, is_default, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			t.Name, nullable(t.Description), t.IsDefault, formatTime(now), formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("failed to insert template: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.ID = id
		t.CreatedAt = now
		t.UpdatedAt = now

		return insertFields(tx, id, t.Fields)
	})
}

func insertFields(tx *sql.Tx, templateID int64, fields []models.TemplateField) error {
	for i := range fields {
		f := &fields[i]

		var options sql.NullString
		if len(f.Options) > 0 {
			raw, err := json.Marshal(f.Options)
			if err != nil {
				return fmt.Errorf("failed to marshal options for field %q: %w", f.Name, err)
			}
			options = sql.NullString{String: string(raw), Valid: true}
		}

		res, err := tx.Exec(`
			INSERT INTO template_fields (
				template_id, name, label, field_type, required, default_value,
				options, placeholder, max_length, field_order
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			templateID, f.Name, f.Label, string(f.Type), f.Required, nullable(f.DefaultValue),
			options, nullable(f.Placeholder), nullableInt(int64(f.MaxLength)), f.Order,
		)
		if err != nil {
			return fmt.Errorf("failed to insert field %q: %w", f.Name, err)
		}
		if f.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// GetTemplate returns the template with the given id, or nil when absent.
func (s *Store) GetTemplate(id int64) (*models.Template, error) {
	return s.getTemplate("SELECT "+templateColumns+" FROM templates WHERE id = ?", id)
}

// GetTemplateByName returns the template with the given name (case-exact),
// or nil when absent.
func (s *Store) GetTemplateByName(name string) (*models.Template, error) {
	return s.getTemplate("SELECT "+templateColumns+" FROM templates WHERE name = ?", name)
}

// GetDefaultTemplate returns the template flagged as the system-wide
// default, or nil when none is flagged.
func (s *Store) GetDefaultTemplate() (*models.Template, error) {
	return s.getTemplate("SELECT " + templateColumns + " FROM templates WHERE is_default = 1")
}

func (s *Store) getTemplate(query string, args ...any) (*models.Template, error) {
	t, err := scanTemplate(s.db.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if t.Fields, err = s.loadFields(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTemplates returns all templates with their fields, ordered by id.
func (s *Store) ListTemplates() ([]*models.Template, error) {
	rows, err := s.db.Query("SELECT " + templateColumns + " FROM templates ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range templates {
		if t.Fields, err = s.loadFields(t.ID); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var t models.Template
	var description sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Name, &description, &t.IsDefault, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Description = description.String
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

func (s *Store) loadFields(templateID int64) ([]models.TemplateField, error) {
	rows, err := s.db.Query(`
		SELECT id, name, label, field_type, required, default_value,
		       options, placeholder, max_length, field_order
		FROM template_fields WHERE template_id = ? ORDER BY field_order, id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}
	defer rows.Close()

	var fields []models.TemplateField
	for rows.Next() {
		var f models.TemplateField
		var fieldType string
		var defaultValue, options, placeholder sql.NullString
		var maxLength sql.NullInt64

		err := rows.Scan(&f.ID, &f.Name, &f.Label, &fieldType, &f.Required,
			&defaultValue, &options, &placeholder, &maxLength, &f.Order)
		if err != nil {
			return nil, err
		}

		f.Type = models.FieldType(fieldType)
		f.DefaultValue = defaultValue.String
		f.Placeholder = placeholder.String
		f.MaxLength = int(maxLength.Int64)

		if options.Valid && options.String != "" {
			if err := json.Unmarshal([]byte(options.String), &f.Options); err != nil {
				return nil, fmt.Errorf("failed to unmarshal options for field %q: %w", f.Name, err)
			}
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// UpdateTemplate rewrites a template row in one transaction. When
// replaceFields is set the full existing field set is destroyed and replaced
// with t.Fields. When clearDefault is set every other template loses its
// default flag first.
func (s *Store) UpdateTemplate(t *models.Template, replaceFields, clearDefault bool) error {
	return s.withTx(func(tx *sql.Tx) error {
		if clearDefault {
			if _, err := tx.Exec("UPDATE templates SET is_default = 0 WHERE is_default = 1 AND id != ?", t.ID); err != nil {
				return fmt.Errorf("failed to clear default flag: %w", err)
			}
		}

		now := nowUTC()
		_, err := tx.Exec(`
			UPDATE templates SET name = ?, description = ?, is_default = ?, updated_at = ?
			WHERE id = ?`,
			t.Name, nullable(t.Description), t.IsDefault, formatTime(now), t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update template: %w", err)
		}
		t.UpdatedAt = now

		if replaceFields {
			if _, err := tx.Exec("DELETE FROM template_fields WHERE template_id = ?", t.ID); err != nil {
				return fmt.Errorf("failed to delete old fields: %w", err)
			}
			return insertFields(tx, t.ID, t.Fields)
		}
		return nil
	})
}

// DeleteTemplate removes a template and all its fields in one transaction.
// Returns false when the id does not exist.
func (s *Store) DeleteTemplate(id int64) (bool, error) {
	deleted := false
	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM template_fields WHERE template_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete fields: %w", err)
		}
		res, err := tx.Exec("DELETE FROM templates WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	return deleted, err
}

// SetDefaultTemplate clears the global default flag and sets it on the given
// template, atomically. Returns sql.ErrNoRows when the id does not exist.
func (s *Store) SetDefaultTemplate(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRow("SELECT count(*) FROM templates WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return sql.ErrNoRows
		}
		if _, err := tx.Exec("UPDATE templates SET is_default = 0 WHERE is_default = 1"); err != nil {
			return fmt.Errorf("failed to clear default flag: %w", err)
		}
		if _, err := tx.Exec("UPDATE templates SET is_default = 1, updated_at = ? WHERE id = ?", formatTime(nowUTC()), id); err != nil {
			return fmt.Errorf("failed to set default flag: %w", err)
		}
		return nil
	})
}

// CountReportsForTemplate returns the number of reports bound to a template.
func (s *Store) CountReportsForTemplate(id int64) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT count(*) FROM reports WHERE template_id = ?", id).Scan(&n)
	return n, err
}
