package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/domain"
)

// CallRegistry tracks every live call keyed by its conversation thread.
// All three operations are single-key atomic; nothing does I/O while the
// lock is held. It is the only shared mutable state in the service.
type CallRegistry struct {
	mu       sync.RWMutex
	sessions map[domain.ThreadID]*CallSession
}

func NewCallRegistry() *CallRegistry {
	return &CallRegistry{sessions: make(map[domain.ThreadID]*CallSession)}
}

func (r *CallRegistry) Get(id domain.ThreadID) (*CallSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Upsert stores the session, unconditionally overwriting any previous entry
// for the thread (last writer wins).
func (r *CallRegistry) Upsert(id domain.ThreadID, s *CallSession) {
	r.mu.Lock()
	_, replaced := r.sessions[id]
	r.sessions[id] = s
	r.mu.Unlock()
	if replaced {
		log.Warn().Str("module", "app.registry").Str("thread", string(id)).Msg("replaced existing session for thread")
		return
	}
	log.Info().Str("module", "app.registry").Str("thread", string(id)).Msg("registered session")
}

// Remove extracts and returns the session for the thread. Follow-up cleanup
// is the caller's job and happens outside the registry lock.
func (r *CallRegistry) Remove(id domain.ThreadID) (*CallSession, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		log.Info().Str("module", "app.registry").Str("thread", string(id)).Msg("removed session")
	}
	return s, ok
}

func (r *CallRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
