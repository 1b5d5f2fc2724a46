// Package wizard keeps the short-lived state of multi-step bot forms.
package wizard

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found or expired")
	ErrSessionMismatch = errors.New("wizard session was replaced by a newer one")
)

// Session is the partial check-in form of one chat user.
type Session struct {
	ID        string
	Key       string
	WorkFrom  string
	Mood      string
	StartedAt time.Time
}

// Complete reports whether every selection needed before the details form is present.
func (s Session) Complete() bool {
	return s.WorkFrom != "" && s.Mood != ""
}

// Store is a TTL cache of sessions keyed by platform and user id.
// Abandoned sessions are evicted by the cache janitor.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func Key(platform, userID string) string {
	return platform + ":" + userID
}

// Start opens a fresh session for key, replacing any previous one.
func (s *Store) Start(key string) Session {
	session := Session{
		ID:        uuid.NewString(),
		Key:       key,
		StartedAt: time.Now(),
	}
	s.cache.Set(key, session, s.ttl)
	return session
}

// Get returns the live session for key. An empty sessionID skips the id check.
func (s *Store) Get(key, sessionID string) (Session, error) {
	v, found := s.cache.Get(key)
	if !found {
		return Session{}, ErrSessionNotFound
	}
	session := v.(Session)
	if sessionID != "" && session.ID != sessionID {
		return Session{}, ErrSessionMismatch
	}
	return session, nil
}

// Update applies fn to the live session and refreshes its TTL.
func (s *Store) Update(key, sessionID string, fn func(*Session)) (Session, error) {
	session, err := s.Get(key, sessionID)
	if err != nil {
		return Session{}, err
	}
	fn(&session)
	s.cache.Set(key, session, s.ttl)
	return session, nil
}

func (s *Store) Delete(key string) {
	s.cache.Delete(key)
}

// Len returns the number of unexpired sessions.
func (s *Store) Len() int {
	return len(s.cache.Items())
}
