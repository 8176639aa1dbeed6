package sessions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// MemoryRepository is an in-process Repository for tests.
type MemoryRepository struct {
	mu      sync.Mutex
	session *models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (models.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return models.Session{}, false, nil
	}
	return *r.session, true, nil
}

func (r *MemoryRepository) Save(_ context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = &s
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}
