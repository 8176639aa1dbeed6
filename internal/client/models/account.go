package models

import "time"

// Seed account credentials. The seed is always present and is never stored
// in the registered accounts record.
const (
	SeedName     = "Hirdesh"
	SeedEmail    = "hirdesh@medAI.com"
	SeedPassword = "test1234"
)

// Account is a locally registered user. Password is kept as entered.
type Account struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// SeedAccount returns the built-in account. It has no stored creation time;
// callers stamp sessions made from it with the login time.
func SeedAccount() Account {
	return Account{Name: SeedName, Email: SeedEmail, Password: SeedPassword}
}

// Session is the public part of the logged-in account.
type Session struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewSession builds a Session from a. A zero a.CreatedAt is replaced by now.
func NewSession(a Account, now time.Time) Session {
	created := a.CreatedAt
	if created.IsZero() {
		created = now
	}
	return Session{
		Name:        a.Name,
		Email:       a.Email,
		DisplayName: a.Name,
		CreatedAt:   created,
	}
}
