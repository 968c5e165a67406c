package notes

import (
	"context"
	"fmt"
	"sort"

	"notelink/store"
	"notelink/types"
)

// CreateTemplateInput carries the fields for a new template.
type CreateTemplateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateTemplateInput carries a partial template update; nil fields are kept.
type UpdateTemplateInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreateTemplate creates a template and persists the snapshot.
func (s *Service) CreateTemplate(ctx context.Context, in CreateTemplateInput) (types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Template{}, err
	}
	t, err := st.CreateTemplate(s.newID(), in.Title, in.Content, s.now())
	if err != nil {
		return types.Template{}, err
	}
	if err := s.commit(st); err != nil {
		return types.Template{}, err
	}
	return *t, nil
}

// Template returns a single template by id.
func (s *Service) Template(ctx context.Context, id string) (types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Template{}, err
	}
	t, ok := st.Template(id)
	if !ok {
		return types.Template{}, fmt.Errorf("template %s: %w", id, store.ErrNotFound)
	}
	return *t, nil
}

// Templates lists all templates, most recently updated first.
func (s *Service) Templates(ctx context.Context) ([]types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]types.Template, 0, len(st.Templates))
	for _, t := range st.Templates {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateTemplate applies a partial update and persists the snapshot.
func (s *Service) UpdateTemplate(ctx context.Context, id string, in UpdateTemplateInput) (types.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Template{}, err
	}
	t, err := st.UpdateTemplate(id, in.Title, in.Content, s.now())
	if err != nil {
		return types.Template{}, err
	}
	if err := s.commit(st); err != nil {
		return types.Template{}, err
	}
	return *t, nil
}

// DeleteTemplate removes a template and persists the snapshot.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := st.DeleteTemplate(id); err != nil {
		return err
	}
	return s.commit(st)
}
