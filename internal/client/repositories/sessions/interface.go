// Package sessions persists the single session snapshot ("sessionUser").
package sessions

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

type Repository interface {
	// Load returns the stored snapshot; ok is false when there is none.
	Load(ctx context.Context) (models.Session, bool, error)
	// Save replaces the snapshot.
	Save(ctx context.Context, s models.Session) error
	// Clear removes the snapshot. Clearing an absent snapshot is not an error.
	Clear(ctx context.Context) error
}
