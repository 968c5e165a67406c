// Package store holds the in-memory note snapshot and the incremental
// link-graph updater that keeps forward references and backreferences
// symmetric across create, edit, and delete operations.
package store

import (
	"fmt"
	"time"

	"notelink/types"
)

// Store is the full in-memory collection of notes and templates: the
// snapshot loaded from persistence before a mutation and saved back
// after. It is not safe for concurrent use; callers serialize access.
type Store struct {
	Notes     map[string]*types.Note     `json:"notes"`
	Templates map[string]*types.Template `json:"templates"`
}

// New returns an empty initialized snapshot.
func New() *Store {
	return &Store{
		Notes:     make(map[string]*types.Note),
		Templates: make(map[string]*types.Template),
	}
}

// Normalize repairs nil maps and slices after JSON decoding, so that a
// lookup miss stays distinguishable from a present-but-empty set.
func (s *Store) Normalize() {
	if s.Notes == nil {
		s.Notes = make(map[string]*types.Note)
	}
	if s.Templates == nil {
		s.Templates = make(map[string]*types.Template)
	}
	for _, n := range s.Notes {
		if n.References == nil {
			n.References = []string{}
		}
		if n.Backreferences == nil {
			n.Backreferences = []string{}
		}
	}
}

// Note returns the note record for id. The boolean distinguishes a
// missing record from a note with no links.
func (s *Store) Note(id string) (*types.Note, bool) {
	n, ok := s.Notes[id]
	return n, ok
}

// CreateNote adds a new note with the given id. The note starts with
// empty reference sets; an initial body is applied through the updater
// so its markers populate References and the targets' Backreferences.
func (s *Store) CreateNote(id, title, content string, now time.Time) (*types.Note, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	n := &types.Note{
		ID:             id,
		Title:          title,
		References:     []string{},
		Backreferences: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Notes[id] = n
	if content != "" {
		s.ApplyContentUpdate(id, content)
	}
	return n, nil
}

// UpdateNote replaces the note's title and/or content. A nil field is
// left unchanged. Content replacement runs the link updater; a title
// change alone does not touch the graph. UpdatedAt is refreshed on any
// change.
func (s *Store) UpdateNote(id string, title, content *string, now time.Time) (*types.Note, error) {
	n, ok := s.Notes[id]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if title == nil && content == nil {
		return n, nil
	}
	if title != nil {
		if *title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalid)
		}
		n.Title = *title
	}
	if content != nil {
		s.ApplyContentUpdate(id, *content)
	}
	n.UpdatedAt = now
	return n, nil
}

// DeleteNote removes the note and severs every edge incident to its id:
// referrers lose the id from their References, targets lose it from
// their Backreferences. Both directions are swept before the record is
// discarded so the symmetry invariant holds for the surviving notes.
func (s *Store) DeleteNote(id string) error {
	n, ok := s.Notes[id]
	if !ok {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	for _, from := range n.Backreferences {
		if src, ok := s.Notes[from]; ok {
			src.References = removeID(src.References, id)
		}
	}
	for _, to := range n.References {
		if dst, ok := s.Notes[to]; ok {
			dst.Backreferences = removeID(dst.Backreferences, id)
		}
	}
	delete(s.Notes, id)
	return nil
}
