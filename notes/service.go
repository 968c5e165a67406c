// Package notes is the operation boundary over the note snapshot. Every
// operation runs under one mutex spanning the full load → graph update →
// save cycle, so the updater's diff is always computed against a
// snapshot no other writer has touched.
package notes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notelink/store"
	"notelink/types"
)

// Gateway loads and saves the whole snapshot. Load returns an empty
// initialized snapshot when none has been persisted yet.
type Gateway interface {
	Load() (*store.Store, error)
	Save(*store.Store) error
}

// StaleChecker is implemented by gateways that can detect external
// changes to the persisted document. A stale gateway causes the service
// to drop its cached snapshot and reload before the next operation.
type StaleChecker interface {
	Stale() bool
}

// Service owns the cached snapshot and serializes all access to it.
type Service struct {
	mu      sync.Mutex
	gateway Gateway
	newID   func() string
	now     func() time.Time
	snap    *store.Store
}

// Option configures a Service.
type Option func(*Service)

// WithIDFunc overrides the note/template id generator (default: uuid.NewString).
func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithClock overrides the timestamp source (default: time.Now).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

// New creates a Service over the given gateway.
func New(g Gateway, opts ...Option) *Service {
	s := &Service{
		gateway: g,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot returns the current snapshot, reloading from the gateway
// when nothing is cached or the gateway reports external changes.
// Callers must hold s.mu.
func (s *Service) snapshot() (*store.Store, error) {
	if sc, ok := s.gateway.(StaleChecker); ok && sc.Stale() {
		s.snap = nil
	}
	if s.snap == nil {
		st, err := s.gateway.Load()
		if err != nil {
			return nil, err
		}
		s.snap = st
	}
	return s.snap, nil
}

// commit persists the snapshot. On failure the cached snapshot is
// discarded so partially-applied in-memory state is never treated as
// committed; the next operation reloads from disk.
func (s *Service) commit(st *store.Store) error {
	if err := s.gateway.Save(st); err != nil {
		s.snap = nil
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// --- Notes ---

// CreateNoteInput carries the fields for a new note. When Content is
// empty and TemplateID is set, the template's content seeds the body
// (and its markers populate the new note's references).
type CreateNoteInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	TemplateID string `json:"templateId"`
}

// UpdateNoteInput carries a partial note update; nil fields are kept.
type UpdateNoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreateNote creates a note, resolves its initial references, and
// persists the snapshot.
func (s *Service) CreateNote(ctx context.Context, in CreateNoteInput) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Note{}, err
	}

	content := in.Content
	if content == "" && in.TemplateID != "" {
		tpl, ok := st.Template(in.TemplateID)
		if !ok {
			return types.Note{}, fmt.Errorf("template %s: %w", in.TemplateID, store.ErrNotFound)
		}
		content = tpl.Content
	}

	n, err := st.CreateNote(s.newID(), in.Title, content, s.now())
	if err != nil {
		return types.Note{}, err
	}
	if err := s.commit(st); err != nil {
		return types.Note{}, err
	}
	return n.Clone(), nil
}

// Note returns a single note by id.
func (s *Service) Note(ctx context.Context, id string) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Note{}, err
	}
	n, ok := st.Note(id)
	if !ok {
		return types.Note{}, fmt.Errorf("note %s: %w", id, store.ErrNotFound)
	}
	return n.Clone(), nil
}

// Notes lists all notes, most recently updated first.
func (s *Service) Notes(ctx context.Context) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]types.Note, 0, len(st.Notes))
	for _, n := range st.Notes {
		out = append(out, n.Clone())
	}
	sortNotes(out)
	return out, nil
}

// UpdateNote applies a partial update, reruns the link updater for
// content changes, and persists the snapshot.
func (s *Service) UpdateNote(ctx context.Context, id string, in UpdateNoteInput) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return types.Note{}, err
	}
	n, err := st.UpdateNote(id, in.Title, in.Content, s.now())
	if err != nil {
		return types.Note{}, err
	}
	if err := s.commit(st); err != nil {
		return types.Note{}, err
	}
	return n.Clone(), nil
}

// DeleteNote removes a note, cascades the link cleanup to its
// neighbors, and persists everything in the same snapshot write.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return err
	}
	if err := st.DeleteNote(id); err != nil {
		return err
	}
	return s.commit(st)
}

// Backlinks returns the notes that currently reference id.
func (s *Service) Backlinks(ctx context.Context, id string) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	sources, ok := st.Backlinks(id)
	if !ok {
		return nil, fmt.Errorf("note %s: %w", id, store.ErrNotFound)
	}
	out := make([]types.Note, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Clone())
	}
	sortNotes(out)
	return out, nil
}

// SearchNotes returns notes whose title or content contains the query,
// case-insensitively.
func (s *Service) SearchNotes(ctx context.Context, query string) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []types.Note
	for _, n := range st.Notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n.Clone())
		}
	}
	sortNotes(out)
	return out, nil
}

// Overview returns link-graph counters for the health surface.
func (s *Service) Overview(ctx context.Context) (store.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.snapshot()
	if err != nil {
		return store.Stats{}, err
	}
	return st.Stats(), nil
}

func sortNotes(notes []types.Note) {
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].ID < notes[j].ID
	})
}
