package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, email and password and creates a local account.
// The new account is logged in right away.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	s, err := a.sessions.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", s.DisplayName))
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	s, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", s.DisplayName))
	return nil
}

// Logout ends the session and resets the analysis so the next user starts
// clean.
func (a *App) Logout(ctx context.Context) error {
	a.workflow.RemoveFile(ctx)
	a.lastReport = nil

	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
