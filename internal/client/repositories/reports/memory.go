package reports

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// MemoryRepository is an in-process Repository for tests.
type MemoryRepository struct {
	mu   sync.Mutex
	list []models.Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(_ context.Context, rep models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hasID(r.list, rep.ID) {
		return ErrDuplicateID
	}
	r.list = append(r.list, rep)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.list), nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return byUser(r.list, userID), nil
}
