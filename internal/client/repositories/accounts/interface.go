// Package accounts persists the locally registered accounts as one whole
// "registeredUsers" record. The seed account is never stored but still
// counts for email uniqueness.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

type Repository interface {
	// List returns registered accounts in signup order.
	List(ctx context.Context) ([]models.Account, error)
	// Find returns the registered account with exactly this email.
	Find(ctx context.Context, email string) (models.Account, bool, error)
	// Add appends a, failing with common.ErrDuplicateAccount when the email
	// is the seed's or already registered.
	Add(ctx context.Context, a models.Account) error
}

func find(list []models.Account, email string) (models.Account, bool) {
	for _, a := range list {
		if a.Email == email {
			return a, true
		}
	}
	return models.Account{}, false
}

func taken(list []models.Account, email string) bool {
	if email == models.SeedEmail {
		return true
	}
	_, ok := find(list, email)
	return ok
}
