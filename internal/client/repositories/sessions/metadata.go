package sessions

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/metadata"
)

// MetadataRepository keeps the snapshot in the profile key/value table.
type MetadataRepository struct {
	rec *metadata.Record[models.Session]
}

func NewMetadataRepository(kv metadata.Repository) *MetadataRepository {
	return &MetadataRepository{rec: metadata.NewRecord[models.Session](kv, metadata.KeySessionUser)}
}

func (r *MetadataRepository) Load(ctx context.Context) (models.Session, bool, error) {
	return r.rec.Load(ctx)
}

func (r *MetadataRepository) Save(ctx context.Context, s models.Session) error {
	return r.rec.Save(ctx, s)
}

func (r *MetadataRepository) Clear(ctx context.Context) error {
	return r.rec.Delete(ctx)
}
