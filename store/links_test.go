package store

import (
	"reflect"
	"testing"
	"time"
)

var (
	idA = "550e8400-e29b-41d4-a716-446655440000"
	idB = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	idC = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"
	idX = "00000000-0000-0000-0000-00000000dead"

	t0 = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

// mustCreate adds a note or fails the test.
func mustCreate(t *testing.T, s *Store, id, title, content string) {
	t.Helper()
	if _, err := s.CreateNote(id, title, content, t0); err != nil {
		t.Fatalf("CreateNote(%s) = %v", id, err)
	}
}

// mustBeSymmetric fails the test if the graph invariants are violated.
func mustBeSymmetric(t *testing.T, s *Store) {
	t.Helper()
	if v := s.CheckSymmetry(); len(v) != 0 {
		t.Fatalf("symmetry violations: %v", v)
	}
}

func ref(id string) string { return "[[" + id + "]]" }

// --- Basic linking ---

func TestLink_CreateEstablishesBacklink(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", ref(idA))

	a := s.Notes[idA]
	b := s.Notes[idB]
	if !reflect.DeepEqual(b.References, []string{idA}) {
		t.Errorf("B.References = %v, want [%s]", b.References, idA)
	}
	if !reflect.DeepEqual(a.Backreferences, []string{idB}) {
		t.Errorf("A.Backreferences = %v, want [%s]", a.Backreferences, idB)
	}
	mustBeSymmetric(t, s)
}

func TestLink_ClearingContentRemovesBacklink(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", ref(idA))

	s.ApplyContentUpdate(idB, "")

	if got := s.Notes[idB].References; len(got) != 0 {
		t.Errorf("B.References = %v, want empty", got)
	}
	if got := s.Notes[idA].Backreferences; len(got) != 0 {
		t.Errorf("A.Backreferences = %v, want empty", got)
	}
	mustBeSymmetric(t, s)
}

func TestLink_EditSwapsTarget(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idC, "C", "")
	mustCreate(t, s, idB, "B", ref(idA))

	s.ApplyContentUpdate(idB, "now see "+ref(idC))

	if got := s.Notes[idA].Backreferences; len(got) != 0 {
		t.Errorf("A.Backreferences = %v, want empty", got)
	}
	if got := s.Notes[idC].Backreferences; !reflect.DeepEqual(got, []string{idB}) {
		t.Errorf("C.Backreferences = %v, want [%s]", got, idB)
	}
	mustBeSymmetric(t, s)
}

func TestLink_UnchangedContentIsNoopDiff(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", ref(idA))

	before := s.Notes[idA].Backreferences
	s.ApplyContentUpdate(idB, ref(idA))

	if got := s.Notes[idA].Backreferences; !reflect.DeepEqual(got, before) {
		t.Errorf("A.Backreferences = %v, want %v", got, before)
	}
	mustBeSymmetric(t, s)
}

func TestLink_MissingNoteIsNoop(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")

	s.ApplyContentUpdate(idX, ref(idA))

	if got := s.Notes[idA].Backreferences; len(got) != 0 {
		t.Errorf("A.Backreferences = %v, want empty", got)
	}
}

// --- Idempotent re-apply ---

func TestLink_IdempotentReapply(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", "")

	content := ref(idA) + " twice " + ref(idA)
	s.ApplyContentUpdate(idB, content)
	refs := append([]string(nil), s.Notes[idB].References...)
	backs := append([]string(nil), s.Notes[idA].Backreferences...)

	s.ApplyContentUpdate(idB, content)

	if got := s.Notes[idB].References; !reflect.DeepEqual(got, refs) {
		t.Errorf("References after re-apply = %v, want %v", got, refs)
	}
	if got := s.Notes[idA].Backreferences; !reflect.DeepEqual(got, backs) {
		t.Errorf("Backreferences after re-apply = %v, want %v", got, backs)
	}
	if len(s.Notes[idA].Backreferences) != 1 {
		t.Errorf("Backreferences = %v, want exactly one entry", s.Notes[idA].Backreferences)
	}
	mustBeSymmetric(t, s)
}

// --- Self-references ---

func TestLink_SelfReferenceProducesNoBackreference(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "me: "+ref(idA))

	a := s.Notes[idA]
	if !reflect.DeepEqual(a.References, []string{idA}) {
		t.Errorf("References = %v, want [%s]", a.References, idA)
	}
	if len(a.Backreferences) != 0 {
		t.Errorf("Backreferences = %v, want empty", a.Backreferences)
	}
	mustBeSymmetric(t, s)
}

func TestLink_SelfReferenceRemoval(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", ref(idA))

	s.ApplyContentUpdate(idA, "no more self")

	a := s.Notes[idA]
	if len(a.References) != 0 {
		t.Errorf("References = %v, want empty", a.References)
	}
	if len(a.Backreferences) != 0 {
		t.Errorf("Backreferences = %v, want empty", a.Backreferences)
	}
	mustBeSymmetric(t, s)
}

// --- Dangling references ---

func TestLink_DanglingReferenceRetained(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "points at "+ref(idX))

	if got := s.Notes[idA].References; !reflect.DeepEqual(got, []string{idX}) {
		t.Errorf("References = %v, want [%s]", got, idX)
	}
	mustBeSymmetric(t, s)
}

func TestLink_DanglingThenResolvedStaysAsymmetric(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", ref(idX))

	// Creating the target later does not retroactively establish the
	// backreference; it only appears when A's content is next edited.
	mustCreate(t, s, idX, "X", "")
	if got := s.Notes[idX].Backreferences; len(got) != 0 {
		t.Errorf("X.Backreferences = %v, want empty (documented asymmetry)", got)
	}

	// A's next edit heals the edge.
	s.ApplyContentUpdate(idA, "still "+ref(idX))
	if got := s.Notes[idX].Backreferences; !reflect.DeepEqual(got, []string{idA}) {
		t.Errorf("X.Backreferences after re-edit = %v, want [%s]", got, idA)
	}
	mustBeSymmetric(t, s)
}

// --- Deletion cascade ---

func TestDelete_RemovesForwardLinksInReferrers(t *testing.T) {
	s := New()
	mustCreate(t, s, idB, "B", "")
	mustCreate(t, s, idA, "A", "see "+ref(idB))

	if err := s.DeleteNote(idB); err != nil {
		t.Fatalf("DeleteNote(B) = %v", err)
	}

	if _, ok := s.Notes[idB]; ok {
		t.Fatal("B still present after delete")
	}
	if got := s.Notes[idA].References; len(got) != 0 {
		t.Errorf("A.References = %v, want empty", got)
	}
	mustBeSymmetric(t, s)
}

func TestDelete_RemovesBackreferencesInTargets(t *testing.T) {
	s := New()
	mustCreate(t, s, idB, "B", "")
	mustCreate(t, s, idA, "A", ref(idB))

	if err := s.DeleteNote(idA); err != nil {
		t.Fatalf("DeleteNote(A) = %v", err)
	}

	if got := s.Notes[idB].Backreferences; len(got) != 0 {
		t.Errorf("B.Backreferences = %v, want empty", got)
	}
	mustBeSymmetric(t, s)
}

func TestDelete_MutualLinks(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", ref(idA))
	s.ApplyContentUpdate(idA, ref(idB))

	if err := s.DeleteNote(idA); err != nil {
		t.Fatalf("DeleteNote(A) = %v", err)
	}

	b := s.Notes[idB]
	if len(b.References) != 0 || len(b.Backreferences) != 0 {
		t.Errorf("B = refs %v backs %v, want both empty", b.References, b.Backreferences)
	}
	mustBeSymmetric(t, s)
}

func TestDelete_NotFound(t *testing.T) {
	s := New()
	if err := s.DeleteNote(idX); err == nil {
		t.Fatal("DeleteNote(missing) = nil, want error")
	}
}

// --- Arbitrary edit sequences ---

func TestLink_SymmetryHoldsAcrossEditSequence(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", ref(idB)+ref(idX))
	mustCreate(t, s, idB, "B", ref(idA))
	mustCreate(t, s, idC, "C", ref(idA)+" "+ref(idB)+" "+ref(idC))
	mustBeSymmetric(t, s)

	s.ApplyContentUpdate(idA, ref(idC))
	mustBeSymmetric(t, s)

	s.ApplyContentUpdate(idB, "")
	mustBeSymmetric(t, s)

	if err := s.DeleteNote(idC); err != nil {
		t.Fatalf("DeleteNote(C) = %v", err)
	}
	mustBeSymmetric(t, s)

	s.ApplyContentUpdate(idA, ref(idB)+ref(idB))
	mustBeSymmetric(t, s)

	if got := s.Notes[idB].Backreferences; !reflect.DeepEqual(got, []string{idA}) {
		t.Errorf("B.Backreferences = %v, want [%s]", got, idA)
	}
}

// --- Backlinks lookup ---

func TestBacklinks(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	mustCreate(t, s, idB, "B", ref(idA))
	mustCreate(t, s, idC, "C", ref(idA))

	sources, ok := s.Backlinks(idA)
	if !ok {
		t.Fatal("Backlinks(A) reported missing note")
	}
	if len(sources) != 2 {
		t.Fatalf("Backlinks(A) = %d sources, want 2", len(sources))
	}

	if _, ok := s.Backlinks(idX); ok {
		t.Error("Backlinks(missing) reported ok")
	}
}
