// Package reports persists saved analysis reports as one append-only
// "reports" record, partitioned logically by user id.
package reports

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

type Repository interface {
	// Append stores r at the end of the collection. The id must be unused.
	Append(ctx context.Context, r models.Report) error
	// List returns every report in insertion order.
	List(ctx context.Context) ([]models.Report, error)
	// ListByUser returns the reports of one user in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.Report, error)
}

func byUser(list []models.Report, userID string) []models.Report {
	out := make([]models.Report, 0)
	for _, r := range list {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func hasID(list []models.Report, id string) bool {
	for _, r := range list {
		if r.ID == id {
			return true
		}
	}
	return false
}
