package session

import (
	"sync"

	"github.com/Parthg59/expense-tracker/internal/core"
)

// State is the application session: the authenticated user, if any.
// The current-wallet pointer lives in the ledger store next to the data
// it points at; State only tracks who is logged in.
type State struct {
	mu   sync.RWMutex
	user *core.User
}

func NewState() *State {
	return &State{}
}

// Login records the authenticated user.
func (s *State) Login(user core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
}

// Logout clears the session.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// CurrentUser returns the logged-in user and whether a session exists.
func (s *State) CurrentUser() (core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return core.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a user session exists.
func (s *State) LoggedIn() bool {
	_, ok := s.CurrentUser()
	return ok
}
