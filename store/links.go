package store

import (
	"notelink/parser"
	"notelink/types"
)

// ApplyContentUpdate recomputes the note's outbound references from
// newContent and applies the minimal backlink diff to the snapshot:
// targets that dropped out of the content lose this note from their
// Backreferences, newly referenced targets gain it. Self-references are
// recorded in References but never produce a backreference edge, and
// references to ids with no record produce no edge anywhere (they stay
// dangling in References). The stored set always ends up exactly what
// the latest content extracts to.
//
// A missing noteID is a no-op.
func (s *Store) ApplyContentUpdate(noteID, newContent string) {
	n, ok := s.Notes[noteID]
	if !ok {
		return
	}

	oldRefs := n.References
	newRefs := parser.ExtractRefs(newContent)

	for _, id := range subtract(oldRefs, newRefs) {
		if target, ok := s.Notes[id]; ok {
			target.Backreferences = removeID(target.Backreferences, noteID)
		}
	}

	for _, id := range subtract(newRefs, oldRefs) {
		if id == noteID {
			continue
		}
		if target, ok := s.Notes[id]; ok {
			target.Backreferences = addID(target.Backreferences, noteID)
		}
	}

	n.Content = newContent
	n.References = newRefs
}

// Backlinks returns the notes whose References currently include id.
func (s *Store) Backlinks(id string) ([]*types.Note, bool) {
	n, ok := s.Notes[id]
	if !ok {
		return nil, false
	}
	sources := make([]*types.Note, 0, len(n.Backreferences))
	for _, from := range n.Backreferences {
		if src, ok := s.Notes[from]; ok {
			sources = append(sources, src)
		}
	}
	return sources, true
}

// subtract returns the members of a that are not in b, preserving order.
func subtract(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}
	var out []string
	for _, id := range a {
		if !inB[id] {
			out = append(out, id)
		}
	}
	return out
}

// addID appends id if absent (idempotent insert, never a duplicate).
func addID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// removeID drops every occurrence of id, preserving order.
func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
