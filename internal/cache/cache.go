// Package cache provides the in-session memoization of loaded and derived
// tables. Entries are keyed by (source identity, transform version), so a
// code change that alters a derivation invalidates old entries by bumping
// the version rather than by clearing state. Population is all-or-nothing:
// a failed load caches nothing.
package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached computation: the input identity (file path, URL,
// or a composite label) plus the version of the transform that produced it.
type Key struct {
	Source  string
	Version int
}

func (k Key) String() string {
	return fmt.Sprintf("%s@v%d", k.Source, k.Version)
}

// Store is an in-memory result cache. Concurrent loads of the same key are
// collapsed into a single computation.
type Store struct {
	c     *gocache.Cache
	group singleflight.Group
}

// New creates a Store. A non-positive TTL keeps entries for the lifetime of
// the session.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		return &Store{c: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Store{c: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached value for key, computing and caching it via load on
// a miss. The computed value is cached only on success.
func (s *Store) Get(key Key, load func() (any, error)) (any, error) {
	k := key.String()
	if v, ok := s.c.Get(k); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(k, func() (any, error) {
		if v, ok := s.c.Get(k); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		s.c.SetDefault(k, v)
		return v, nil
	})
	return v, err
}

// Invalidate removes a single entry.
func (s *Store) Invalidate(key Key) {
	s.c.Delete(key.String())
}

// Flush removes every entry.
func (s *Store) Flush() {
	s.c.Flush()
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return s.c.ItemCount()
}

// GetAs is a typed wrapper over Store.Get.
func GetAs[T any](s *Store, key Key, load func() (T, error)) (T, error) {
	var zero T
	v, err := s.Get(key, func() (any, error) {
		return load()
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: entry %s holds %T", key, v)
	}
	return typed, nil
}
