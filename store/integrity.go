package store

import "fmt"

// Stats summarizes the link graph for the health surface. Counters
// only; there is deliberately no traversal or query API here.
type Stats struct {
	Notes     int `json:"notes"`
	Templates int `json:"templates"`
	Links     int `json:"links"`     // forward edges between existing notes
	Dangling  int `json:"dangling"`  // references whose target has no record
	Orphans   int `json:"orphans"`   // notes with no links in or out
}

// Stats computes summary counters over the snapshot.
func (s *Store) Stats() Stats {
	st := Stats{Notes: len(s.Notes), Templates: len(s.Templates)}
	for _, n := range s.Notes {
		for _, ref := range n.References {
			if _, ok := s.Notes[ref]; ok {
				st.Links++
			} else {
				st.Dangling++
			}
		}
		if len(n.References) == 0 && len(n.Backreferences) == 0 {
			st.Orphans++
		}
	}
	return st
}

// CheckSymmetry audits the bidirectional link invariants and returns a
// description of every violation found. An empty result means the
// graph is consistent:
//
//   - B.ID in A.References and B exists  =>  A.ID in B.Backreferences
//   - A.ID in B.Backreferences           =>  A exists and references B
//   - no note lists its own id in Backreferences
//   - no duplicate entries in either set
func (s *Store) CheckSymmetry() []string {
	var violations []string

	for id, n := range s.Notes {
		if dup := firstDuplicate(n.References); dup != "" {
			violations = append(violations, fmt.Sprintf("note %s: duplicate reference %s", id, dup))
		}
		if dup := firstDuplicate(n.Backreferences); dup != "" {
			violations = append(violations, fmt.Sprintf("note %s: duplicate backreference %s", id, dup))
		}

		for _, ref := range n.References {
			target, ok := s.Notes[ref]
			if !ok || ref == id {
				continue // dangling and self references carry no edge
			}
			if !containsID(target.Backreferences, id) {
				violations = append(violations, fmt.Sprintf("note %s references %s but is missing from its backreferences", id, ref))
			}
		}

		for _, from := range n.Backreferences {
			if from == id {
				violations = append(violations, fmt.Sprintf("note %s lists itself as a backreference", id))
				continue
			}
			src, ok := s.Notes[from]
			if !ok {
				violations = append(violations, fmt.Sprintf("note %s has backreference from nonexistent note %s", id, from))
				continue
			}
			if !containsID(src.References, id) {
				violations = append(violations, fmt.Sprintf("note %s has backreference from %s which does not reference it", id, from))
			}
		}
	}

	return violations
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func firstDuplicate(ids []string) string {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id
		}
		seen[id] = true
	}
	return ""
}
