package reports

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/metadata"
)

// MetadataRepository keeps reports in the profile key/value table.
type MetadataRepository struct {
	rec *metadata.Record[[]models.Report]
}

func NewMetadataRepository(kv metadata.Repository) *MetadataRepository {
	return &MetadataRepository{rec: metadata.NewRecord[[]models.Report](kv, metadata.KeyReports)}
}

func (r *MetadataRepository) Append(ctx context.Context, rep models.Report) error {
	return r.rec.Update(ctx, func(cur []models.Report, _ bool) ([]models.Report, error) {
		if hasID(cur, rep.ID) {
			return nil, ErrDuplicateID
		}
		return append(cur, rep), nil
	})
}

func (r *MetadataRepository) List(ctx context.Context) ([]models.Report, error) {
	list, _, err := r.rec.Load(ctx)
	return list, err
}

func (r *MetadataRepository) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return byUser(list, userID), nil
}
