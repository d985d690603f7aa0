package services

import (
	"context"
	"sync"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// SessionRegistry keeps at most one wizard session per user
type SessionRegistry interface {
	Get(ctx context.Context, userID int64) (models.WizardSession, bool, error)
	// Set replaces whatever session the user had
	Set(ctx context.Context, userID int64, session models.WizardSession) error
	Clear(ctx context.Context, userID int64) error
}

// MemorySessionRegistry is a process-local SessionRegistry. Sessions are lost
// on restart.
type MemorySessionRegistry struct {
	sessions map[int64]models.WizardSession
	mu       sync.RWMutex
}

// NewMemorySessionRegistry creates an empty registry
func NewMemorySessionRegistry() *MemorySessionRegistry {
	return &MemorySessionRegistry{sessions: make(map[int64]models.WizardSession)}
}

func (r *MemorySessionRegistry) Get(ctx context.Context, userID int64) (models.WizardSession, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[userID]
	return s, ok, nil
}

func (r *MemorySessionRegistry) Set(ctx context.Context, userID int64, session models.WizardSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = session
	return nil
}

func (r *MemorySessionRegistry) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}

// Len returns the number of open sessions (health output)
func (r *MemorySessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
