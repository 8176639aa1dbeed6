// Package services contains application services for the MRI scan client.
// This file defines the session manager: signup, login, session restore and
// logout against the locally stored accounts.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/mriscan/internal/common"
	"github.com/dmitrijs2005/mriscan/internal/logging"
	"github.com/dmitrijs2005/mriscan/internal/validation"
)

// ErrAccountCreatedNoSession reports a signup whose account was stored but
// whose session snapshot was not. The account exists; logging in completes it.
var ErrAccountCreatedNoSession = errors.New("account created but not logged in, please log in")

// SessionManager owns the current session of one profile.
//
// Contract:
//   - Signup: register a new account and log it in.
//   - Login: match email+password against the seed, then registered accounts.
//   - RestoreSession: adopt the stored snapshot at startup.
//   - Logout: drop the session and its snapshot. Idempotent.
//   - Current: the session in memory, if any.
//
// Passwords are compared as stored; this is not a security boundary.
type SessionManager interface {
	Signup(ctx context.Context, name, email, password string) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
	RestoreSession(ctx context.Context) (models.Session, bool, error)
	Logout(ctx context.Context) error
	Current() (models.Session, bool)
}

type sessionManager struct {
	mu       sync.Mutex
	current  *models.Session
	accounts accounts.Repository
	sessions sessions.Repository
	log      logging.Logger
	now      func() time.Time
}

// NewSessionManager returns a SessionManager with no current session. Call
// RestoreSession once at startup to pick up a stored one.
func NewSessionManager(accountRepo accounts.Repository, sessionRepo sessions.Repository, log logging.Logger) SessionManager {
	return &sessionManager{
		accounts: accountRepo,
		sessions: sessionRepo,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signupInput struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (m *sessionManager) Signup(ctx context.Context, name, email, password string) (models.Session, error) {
	if err := validation.Struct(signupInput{Name: name, Email: email, Password: password}); err != nil {
		return models.Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc := models.Account{Name: name, Email: email, Password: password, CreatedAt: m.now()}
	if err := m.accounts.Add(ctx, acc); err != nil {
		m.log.Info(ctx, "signup rejected", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("signup error: %w", err)
	}

	s := models.NewSession(acc, m.now())
	if err := m.establish(ctx, s); err != nil {
		m.log.Warn(ctx, "account created without session", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("signup error: %w: %w", ErrAccountCreatedNoSession, err)
	}

	m.log.Info(ctx, "account created", "email", email)
	return s, nil
}

func (m *sessionManager) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := validation.Struct(loginInput{Email: email, Password: password}); err != nil {
		return models.Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, err := m.match(ctx, email, password)
	if err != nil {
		m.log.Info(ctx, "login failed", "email", email, "error", err)
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	s := models.NewSession(acc, m.now())
	if err := m.establish(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	m.log.Info(ctx, "logged in", "email", email)
	return s, nil
}

// match checks the seed first, then registered accounts in order.
func (m *sessionManager) match(ctx context.Context, email, password string) (models.Account, error) {
	seed := models.SeedAccount()
	if email == seed.Email && password == seed.Password {
		return seed, nil
	}

	list, err := m.accounts.List(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range list {
		if a.Email == email && a.Password == password {
			return a, nil
		}
	}
	return models.Account{}, common.ErrInvalidCredentials
}

// establish persists s and then makes it current, so a failed write leaves
// the previous session in place.
func (m *sessionManager) establish(ctx context.Context, s models.Session) error {
	if err := m.sessions.Save(ctx, s); err != nil {
		return err
	}
	m.current = &s
	return nil
}

func (m *sessionManager) RestoreSession(ctx context.Context) (models.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil

	s, ok, err := m.sessions.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored session unreadable, discarding", "error", err)
		_ = m.sessions.Clear(ctx)
		return models.Session{}, false, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return models.Session{}, false, nil
	}

	known, err := m.resolves(ctx, s.Email)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("restore session: %w", err)
	}
	if !known {
		m.log.Warn(ctx, "stored session has no account, discarding", "email", s.Email)
		if err := m.sessions.Clear(ctx); err != nil {
			return models.Session{}, false, fmt.Errorf("restore session: %w", err)
		}
		return models.Session{}, false, nil
	}

	m.current = &s
	m.log.Debug(ctx, "session restored", "email", s.Email)
	return s, true, nil
}

func (m *sessionManager) resolves(ctx context.Context, email string) (bool, error) {
	if email == models.SeedEmail {
		return true, nil
	}
	_, ok, err := m.accounts.Find(ctx, email)
	return ok, err
}

func (m *sessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.log.Info(ctx, "logged out", "email", m.current.Email)
	}
	m.current = nil

	if err := m.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (m *sessionManager) Current() (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}
