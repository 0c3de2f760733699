package store

import (
	"sync"

	"github.com/Andebugulin/bloglist/internal/model"
)

// Memory is an in-process SessionStore for tests and ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	session *model.Session
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil, nil
	}
	session := *m.session
	return &session, nil
}

func (m *Memory) Save(session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	m.session = &copied
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	return nil
}
