// Package console holds the admin console's view state: the paged transaction list with
// its filters, the store and customer lists, and the dashboard.
package console

import (
	"sync"

	"gold-ledger/internal/models"
)

// Session is the signed-in admin. Clear is the only mutation the views perform.
type Session interface {
	Current() (models.AdminProfile, bool)
	Clear()
}

// Navigator moves the console to another screen
type Navigator interface {
	ToLogin()
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

// MemorySession keeps the signed-in admin in memory
type MemorySession struct {
	mu      sync.RWMutex
	profile *models.AdminProfile
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

// SignIn records the admin returned by a successful login
func (s *MemorySession) SignIn(profile models.AdminProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
}

func (s *MemorySession) Current() (models.AdminProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.AdminProfile{}, false
	}
	return *s.profile, true
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}
