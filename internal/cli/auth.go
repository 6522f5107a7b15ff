package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/validate"
)

// errMessage maps the sentinel store errors to user-facing messages.
func errMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already exists"
	case errors.Is(err, common.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	case errors.Is(err, common.ErrNotAuthenticated):
		return "Not authenticated"
	}
	return err.Error()
}

// Signup collects the account fields, validates them, and creates the
// account. The new account becomes the active session.
func (a *App) Signup(ctx context.Context) error {
	fullName, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !validate.Email(email) {
		fmt.Fprintln(a.out, "Please enter a valid email address")
		return nil
	}

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password (8-16 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !validate.Password(string(password)) {
		fmt.Fprintln(a.out, "Password must be 8-16 characters long")
		return nil
	}
	fmt.Fprintf(a.out, "Password strength: %s\n", validate.PasswordStrength(string(password)))

	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return nil
	}

	user, err := a.identity.Signup(ctx, fullName, email, username, string(password))
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.FullName)
	return nil
}

// Login prompts for an identifier (email or username) plus password and
// establishes the session.
func (a *App) Login(ctx context.Context) error {
	identifier, err := GetSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.identity.Login(ctx, identifier, string(password))
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.FullName)
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
