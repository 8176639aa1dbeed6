package accounts

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/common"
)

// MemoryRepository is an in-process Repository for tests.
type MemoryRepository struct {
	mu   sync.Mutex
	list []models.Account
}

func NewMemoryRepository(seed ...models.Account) *MemoryRepository {
	return &MemoryRepository{list: slices.Clone(seed)}
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.list), nil
}

func (r *MemoryRepository) Find(_ context.Context, email string) (models.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := find(r.list, email)
	return a, ok, nil
}

func (r *MemoryRepository) Add(_ context.Context, a models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if taken(r.list, a.Email) {
		return common.ErrDuplicateAccount
	}
	r.list = append(r.list, a)
	return nil
}
