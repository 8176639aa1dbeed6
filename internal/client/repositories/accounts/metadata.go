package accounts

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mriscan/internal/common"
)

// MetadataRepository keeps accounts in the profile key/value table.
type MetadataRepository struct {
	rec *metadata.Record[[]models.Account]
}

func NewMetadataRepository(kv metadata.Repository) *MetadataRepository {
	return &MetadataRepository{rec: metadata.NewRecord[[]models.Account](kv, metadata.KeyRegisteredUsers)}
}

func (r *MetadataRepository) List(ctx context.Context) ([]models.Account, error) {
	list, _, err := r.rec.Load(ctx)
	return list, err
}

func (r *MetadataRepository) Find(ctx context.Context, email string) (models.Account, bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return models.Account{}, false, err
	}
	a, ok := find(list, email)
	return a, ok, nil
}

func (r *MetadataRepository) Add(ctx context.Context, a models.Account) error {
	return r.rec.Update(ctx, func(cur []models.Account, _ bool) ([]models.Account, error) {
		if taken(cur, a.Email) {
			return nil, common.ErrDuplicateAccount
		}
		return append(cur, a), nil
	})
}
