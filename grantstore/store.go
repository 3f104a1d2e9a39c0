package grantstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mwestra/actiongate/permission"
)

const defaultKeyPrefix = "aggrant"

// ErrStoreUnavailable wraps Redis failures so callers can fail closed
// without matching on driver errors.
var ErrStoreUnavailable = errors.New("grant store unavailable")

// Store keeps per-identity grant sets in Redis.
type Store struct {
	redis  *redis.Client
	prefix string
}

// NewStore creates a Store. An empty prefix selects the default.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

func (s *Store) key(identity string) string {
	return s.prefix + ":" + identity
}

// Grant adds tags to an identity's set.
func (s *Store) Grant(ctx context.Context, identity string, tags ...permission.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	if err := s.redis.SAdd(ctx, s.key(identity), tagMembers(tags)...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Revoke removes tags from an identity's set.
func (s *Store) Revoke(ctx context.Context, identity string, tags ...permission.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	if err := s.redis.SRem(ctx, s.key(identity), tagMembers(tags)...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Granted returns the identity's current tags. An unknown identity yields
// an empty set, not an error.
func (s *Store) Granted(ctx context.Context, identity string) (permission.Set, error) {
	members, err := s.redis.SMembers(ctx, s.key(identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return permission.NewSetFromStrings(members), nil
}

// Source binds an identity to the store as a per-request
// actiongate.GrantedPermissionSource.
func (s *Store) Source(identity string) Source {
	return Source{store: s, identity: identity}
}

// Source yields the grants of one identity.
type Source struct {
	store    *Store
	identity string
}

// Permissions looks up the bound identity's granted set.
func (s Source) Permissions(ctx context.Context) (permission.Set, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	return s.store.Granted(ctx, s.identity)
}

func tagMembers(tags []permission.Tag) []any {
	members := make([]any, len(tags))
	for i, t := range tags {
		members[i] = string(t)
	}
	return members
}
