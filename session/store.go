// Package session holds the process-wide authenticated-user state with an
// explicit lifecycle: populated on a successful session check, cleared on
// logout or 401-triggered invalidation. The store is only reachable
// through its accessors; nothing else in the module keeps auth state.
package session

import (
	"sync"

	"github.com/tyulyukov/veracity-go/models"
)

// Store is the session state container
type Store struct {
	mu   sync.RWMutex
	user *models.User
}

// NewStore creates an empty, unauthenticated session store
func NewStore() *Store {
	return &Store{}
}

// SetUser records the authenticated user after a successful session check
func (s *Store) SetUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// User returns a copy of the current user and whether a session is held
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a session is held
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Status returns the current membership status, false when no session is
// held
func (s *Store) Status() (models.UserStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return "", false
	}
	return s.user.Status, true
}

// Clear drops the session state. Called on logout and on the global
// 401-invalidation side effect.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}
