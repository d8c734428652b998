package service

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
	"github.com/mag-rock/smart-nippo/internal/logger"
	"github.com/mag-rock/smart-nippo/internal/models"
	"github.com/mag-rock/smart-nippo/internal/storage"
)

// TemplateService enforces the business invariants around templates: unique
// names, a single system-wide default, and destructive field replacement on
// update.
type TemplateService struct {
	store storage.Provider
}

// NewTemplateService creates a template service on top of the given store.
func NewTemplateService(store storage.Provider) *TemplateService {
	return &TemplateService{store: store}
}

// Create validates and persists a new template. The name must not collide
// with an existing template (case-exact). When isDefault is set, the default
// flag is cleared on every other template in the same transaction.
func (s *TemplateService) Create(name, description string, fields []models.TemplateField, isDefault bool) (*models.Template, error) {
	t, err := models.NewTemplate(name, description, fields, isDefault)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetTemplateByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("template %q already exists", name)
	}

	if err := s.store.CreateTemplate(t, isDefault); err != nil {
		return nil, err
	}
	logger.Info("Template created", "id", t.ID, "name", t.Name, "default", t.IsDefault)
	return t, nil
}

// Get returns the template with the given id, or nil when absent.
func (s *TemplateService) Get(id int64) (*models.Template, error) {
	return s.store.GetTemplate(id)
}

// GetByName returns the template with the given name, or nil when absent.
func (s *TemplateService) GetByName(name string) (*models.Template, error) {
	return s.store.GetTemplateByName(name)
}

// GetDefault returns the default template, or nil when none is flagged.
func (s *TemplateService) GetDefault() (*models.Template, error) {
	return s.store.GetDefaultTemplate()
}

// List returns all templates.
func (s *TemplateService) List() ([]*models.Template, error) {
	return s.store.ListTemplates()
}

// UpdateParams carries the optional changes for Update. Nil pointers leave
// the current value untouched. A non-nil Fields slice destroys and replaces
// the full existing field set.
type UpdateParams struct {
	Name        *string
	Description *string
	Fields      []models.TemplateField
	IsDefault   *bool
}

// Update applies the given changes to an existing template. Renames re-check
// name uniqueness against all other templates; setting the default flag
// clears it globally first.
func (s *TemplateService) Update(id int64, params UpdateParams) (*models.Template, error) {
	t, err := s.store.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("template", id)
	}

	if params.Name != nil && *params.Name != t.Name {
		existing, err := s.store.GetTemplateByName(*params.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("template %q already exists", *params.Name)
		}
		t.Name = *params.Name
	}
	if params.Description != nil {
		t.Description = *params.Description
	}

	clearDefault := false
	if params.IsDefault != nil {
		if *params.IsDefault {
			clearDefault = true
		}
		t.IsDefault = *params.IsDefault
	}

	replaceFields := params.Fields != nil
	if replaceFields {
		t.Fields = params.Fields
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTemplate(t, replaceFields, clearDefault); err != nil {
		return nil, err
	}
	logger.Info("Template updated", "id", t.ID, "name", t.Name)
	return t, nil
}

// Delete removes a template and its fields. Deleting the default template or
// a template still referenced by reports fails with a conflict; a missing id
// returns false without error.
func (s *TemplateService) Delete(id int64) (bool, error) {
	t, err := s.store.GetTemplate(id)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}
	if t.IsDefault {
		return false, apperrors.Conflict("the default template cannot be deleted")
	}

	count, err := s.store.CountReportsForTemplate(id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, apperrors.Conflict("template %q is referenced by %d report(s)", t.Name, count)
	}

	deleted, err := s.store.DeleteTemplate(id)
	if err != nil {
		return false, err
	}
	if deleted {
		logger.Info("Template deleted", "id", id, "name", t.Name)
	}
	return deleted, nil
}

// SetDefault flags the given template as the single system-wide default.
func (s *TemplateService) SetDefault(id int64) (*models.Template, error) {
	if err := s.store.SetDefaultTemplate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("template", id)
		}
		return nil, err
	}
	return s.store.GetTemplate(id)
}

// SeedDefault creates the standard template when no default exists yet.
// Returns the default template either way.
func (s *TemplateService) SeedDefault() (*models.Template, error) {
	existing, err := s.store.GetDefaultTemplate()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	t := models.DefaultTemplate()
	if err := s.store.CreateTemplate(t, true); err != nil {
		return nil, err
	}
	logger.Info("Seeded standard template", "id", t.ID)
	return t, nil
}

// ValidateTemplate is a pure, read-only consistency check returning a list
// of human-readable violations. An empty list means the template is valid;
// nothing is raised and nothing is persisted.
func (s *TemplateService) ValidateTemplate(t *models.Template) []string {
	var violations []string

	if t.Name == "" {
		violations = append(violations, "template name is required")
	}
	if len(t.Fields) == 0 {
		violations = append(violations, "at least one field is required")
	}

	seen := make(map[string]int)
	for _, f := range t.Fields {
		seen[f.Name]++
	}
	for name, n := range seen {
		if name != "" && n > 1 {
			violations = append(violations, fmt.Sprintf("duplicate field name: %s", name))
		}
	}

	for i, f := range t.Fields {
		if f.Name == "" {
			violations = append(violations, fmt.Sprintf("field %d: name is required", i+1))
		}
		if f.Label == "" {
			violations = append(violations, fmt.Sprintf("field %d: label is required", i+1))
		}
		if f.Type == models.FieldSelection && len(f.Options) == 0 {
			violations = append(violations, fmt.Sprintf("field %d (%s): selection fields require options", i+1, f.Name))
		}
	}

	return violations
}
