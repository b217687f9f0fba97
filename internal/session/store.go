package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 2 * time.Hour

// Store keeps sessions in memory and forgets them after a period of inactivity.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a store whose sessions expire ttl after their last use.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cleanup := ttl / 4
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Store{cache: cache.New(ttl, cleanup)}
}

// Create starts a new session with a random id.
func (r *Store) Create() *Session {
	s := New(uuid.NewString())
	r.cache.Set(s.ID, s, cache.DefaultExpiration)
	return s
}

// Get returns the session and extends its lifetime.
func (r *Store) Get(id string) (*Session, error) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	s := x.(*Session)
	r.cache.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// Delete ends a session.
func (r *Store) Delete(id string) error {
	if _, found := r.cache.Get(id); !found {
		return ErrNotFound
	}
	r.cache.Delete(id)
	return nil
}

// Len reports the number of live sessions.
func (r *Store) Len() int {
	return r.cache.ItemCount()
}
