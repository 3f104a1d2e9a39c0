package grantstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewStore(client, "")
}

func TestGrantAndGranted(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Grant(ctx, "alice", "Admin", "Editor"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	set, err := store.Granted(ctx, "alice")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if !set.Has("Admin") || !set.Has("Editor") || len(set) != 2 {
		t.Fatalf("set = %v", set)
	}
}

func TestRevoke(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Grant(ctx, "alice", "Admin", "Editor"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := store.Revoke(ctx, "alice", "Admin"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	set, err := store.Granted(ctx, "alice")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if set.Has("Admin") || !set.Has("Editor") {
		t.Fatalf("set = %v", set)
	}
}

func TestUnknownIdentityYieldsEmptySet(t *testing.T) {
	_, store := newTestStore(t)

	set, err := store.Granted(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set)
	}
}

func TestSourcePermissions(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Grant(ctx, "alice", "Admin"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	set, err := store.Source("alice").Permissions(ctx)
	if err != nil {
		t.Fatalf("Permissions failed: %v", err)
	}
	if !set.Has("Admin") {
		t.Fatalf("set = %v", set)
	}
}

func TestBackendDownWrapsErrStoreUnavailable(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	if err := store.Grant(ctx, "alice", "Admin"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := store.Granted(ctx, "alice"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestIdentitiesAreIsolated(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Grant(ctx, "alice", "Admin"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := store.Grant(ctx, "bob", "Viewer"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}

	set, err := store.Granted(ctx, "bob")
	if err != nil {
		t.Fatalf("Granted failed: %v", err)
	}
	if set.Has("Admin") {
		t.Fatal("grants leaked across identities")
	}
}

func TestNoopOnEmptyTagList(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Grant(ctx, "alice"); err != nil {
		t.Fatalf("Grant with no tags must be a no-op: %v", err)
	}
	if err := store.Revoke(ctx, "alice"); err != nil {
		t.Fatalf("Revoke with no tags must be a no-op: %v", err)
	}
}
