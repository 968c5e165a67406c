package store

import (
	"fmt"
	"time"

	"notelink/types"
)

// Templates are plain records: they carry reference markers as inert
// text and never participate in the link graph themselves.

// Template returns the template record for id.
func (s *Store) Template(id string) (*types.Template, bool) {
	t, ok := s.Templates[id]
	return t, ok
}

// CreateTemplate adds a new template with the given id.
func (s *Store) CreateTemplate(id, title, content string, now time.Time) (*types.Template, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	t := &types.Template{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Templates[id] = t
	return t, nil
}

// UpdateTemplate replaces the template's title and/or content. A nil
// field is left unchanged.
func (s *Store) UpdateTemplate(id string, title, content *string, now time.Time) (*types.Template, error) {
	t, ok := s.Templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	if title == nil && content == nil {
		return t, nil
	}
	if title != nil {
		if *title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalid)
		}
		t.Title = *title
	}
	if content != nil {
		t.Content = *content
	}
	t.UpdatedAt = now
	return t, nil
}

// DeleteTemplate removes the template. No link-graph cleanup is needed.
func (s *Store) DeleteTemplate(id string) error {
	if _, ok := s.Templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	delete(s.Templates, id)
	return nil
}
