package permission

import (
	"errors"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("view", []Tag{"Admin", "Viewer"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.Freeze()

	tags, ok := r.Lookup("view")
	if !ok {
		t.Fatal("expected entry for view")
	}
	if len(tags) != 2 || tags[0] != "Admin" || tags[1] != "Viewer" {
		t.Fatalf("unexpected tags: %v", tags)
	}

	if _, ok := r.Lookup("edit"); ok {
		t.Fatal("expected no entry for edit")
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("view", []Tag{"Admin"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("view", []Tag{"Viewer"}); !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}

	// The original entry survives the rejected duplicate.
	tags, ok := r.Lookup("view")
	if !ok || len(tags) != 1 || tags[0] != "Admin" {
		t.Fatalf("original entry damaged: %v %v", tags, ok)
	}
}

func TestRegisterAfterFreezeFails(t *testing.T) {
	r := NewRegistry()
	r.Freeze()

	if err := r.Register("view", []Tag{"Admin"}); !errors.Is(err, ErrRegistryFrozen) {
		t.Fatalf("expected ErrRegistryFrozen, got %v", err)
	}
}

func TestRegisterEmptyActionFails(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", []Tag{"Admin"}); !errors.Is(err, ErrEmptyAction) {
		t.Fatalf("expected ErrEmptyAction, got %v", err)
	}
}

func TestExplicitEmptyEntryIsDistinctFromMissing(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("open", nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.Freeze()

	tags, ok := r.Lookup("open")
	if !ok {
		t.Fatal("explicit empty entry must be found")
	}
	if len(tags) != 0 {
		t.Fatalf("expected empty requirement, got %v", tags)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("missing entry must stay missing")
	}
}

func TestRegisterCopiesInput(t *testing.T) {
	r := NewRegistry()

	input := []Tag{"Admin"}
	if err := r.Register("view", input); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	input[0] = "Mutated"

	tags, _ := r.Lookup("view")
	if tags[0] != "Admin" {
		t.Fatalf("registry entry aliased caller slice: %v", tags)
	}
}

func TestCount(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 {
		t.Fatalf("expected 0, got %d", r.Count())
	}
	_ = r.Register("a", nil)
	_ = r.Register("b", []Tag{"X"})
	if r.Count() != 2 {
		t.Fatalf("expected 2, got %d", r.Count())
	}
}
