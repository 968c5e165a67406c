package store

import (
	"errors"
	"testing"
	"time"
)

const tplID = "11111111-2222-3333-4444-555555555555"

func TestCreateTemplate_RequiresTitle(t *testing.T) {
	s := New()
	if _, err := s.CreateTemplate(tplID, "", "body", t0); !errors.Is(err, ErrInvalid) {
		t.Fatalf("CreateTemplate(empty title) = %v, want ErrInvalid", err)
	}
}

func TestTemplate_CRUD(t *testing.T) {
	s := New()
	tpl, err := s.CreateTemplate(tplID, "Meeting", "agenda: "+ref(idA), t0)
	if err != nil {
		t.Fatalf("CreateTemplate = %v", err)
	}
	if tpl.ID != tplID || tpl.Title != "Meeting" {
		t.Errorf("template = %+v", tpl)
	}

	got, ok := s.Template(tplID)
	if !ok || got.Content != "agenda: "+ref(idA) {
		t.Fatalf("Template(%s) = %+v, %v", tplID, got, ok)
	}

	later := t0.Add(time.Hour)
	content := "revised"
	if _, err := s.UpdateTemplate(tplID, nil, &content, later); err != nil {
		t.Fatalf("UpdateTemplate = %v", err)
	}
	got, _ = s.Template(tplID)
	if got.Content != "revised" || !got.UpdatedAt.Equal(later) {
		t.Errorf("template after update = %+v", got)
	}

	if err := s.DeleteTemplate(tplID); err != nil {
		t.Fatalf("DeleteTemplate = %v", err)
	}
	if _, ok := s.Template(tplID); ok {
		t.Error("template still present after delete")
	}
}

func TestTemplate_NotFound(t *testing.T) {
	s := New()
	if err := s.DeleteTemplate(tplID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteTemplate(missing) = %v, want ErrNotFound", err)
	}
	title := "x"
	if _, err := s.UpdateTemplate(tplID, &title, nil, t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateTemplate(missing) = %v, want ErrNotFound", err)
	}
}

func TestTemplate_MarkersStayInert(t *testing.T) {
	s := New()
	mustCreate(t, s, idA, "A", "")
	if _, err := s.CreateTemplate(tplID, "T", ref(idA), t0); err != nil {
		t.Fatalf("CreateTemplate = %v", err)
	}
	// Template content never touches the link graph.
	if got := s.Notes[idA].Backreferences; len(got) != 0 {
		t.Errorf("A.Backreferences = %v, want empty", got)
	}
}
