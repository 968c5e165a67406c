package types

import "time"

// Note is a text note in the collection. References and Backreferences
// are derived from content by the store and kept symmetric: for any two
// notes A and B that exist, B.ID is in A.References exactly when A.ID is
// in B.Backreferences.
type Note struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	References     []string  `json:"references"`
	Backreferences []string  `json:"backreferences"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Template is a reusable initial body for new notes. Templates take no
// part in the link graph; their markers are extracted only when a note
// is created from them.
type Template struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the note, detached from store-owned slices.
func (n *Note) Clone() Note {
	c := *n
	c.References = append([]string(nil), n.References...)
	c.Backreferences = append([]string(nil), n.Backreferences...)
	return c
}
