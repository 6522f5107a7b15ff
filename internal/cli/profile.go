package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/format"
	"github.com/dmitrijs2005/taskflow/internal/validate"
)

// Profile shows the current account and optionally updates it. Empty input
// keeps the stored value.
func (a *App) Profile(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	fmt.Fprintf(a.out, "[%s] %s\nEmail: %s\nUsername: %s\n",
		format.Initials(user.FullName), user.FullName, user.Email, user.Username)

	fullName, err := GetSimpleText(a.reader, fmt.Sprintf("Full name [%s]", user.FullName), a.out)
	if err != nil {
		return err
	}
	if fullName == "" {
		fullName = user.FullName
	}

	email, err := GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", user.Email), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = user.Email
	}
	if !validate.Email(email) {
		fmt.Fprintln(a.out, "Please enter a valid email address")
		return nil
	}

	username, err := GetSimpleText(a.reader, fmt.Sprintf("Username [%s]", user.Username), a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = user.Username
	}

	updated, err := a.identity.UpdateProfile(ctx, fullName, email, username)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Profile updated for %s\n", updated.Username)
	return nil
}

// Password prompts for the current and new password and rotates the
// credential.
func (a *App) Password(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword("New password (8-16 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if !validate.Password(string(next)) {
		fmt.Fprintln(a.out, "Password must be 8-16 characters long")
		return nil
	}
	fmt.Fprintf(a.out, "Password strength: %s\n", validate.PasswordStrength(string(next)))

	confirm, err := GetPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(next) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return nil
	}

	if err := a.identity.ChangePassword(ctx, string(current), string(next)); err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Settings shows the stored preferences and optionally flips them.
// Accepted answers are "on" and "off"; anything else keeps the stored value.
func (a *App) Settings(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	current := a.settings.Get()
	fmt.Fprintf(a.out, "Dark mode: %s\nTask reminders: %s\n",
		onOff(current.DarkMode), onOff(current.TaskReminders))

	var darkMode, taskReminders *bool

	answer, err := GetSimpleText(a.reader, "Dark mode on/off (empty keeps)", a.out)
	if err != nil {
		return err
	}
	if v, ok := parseOnOff(answer); ok {
		darkMode = &v
	}

	answer, err = GetSimpleText(a.reader, "Task reminders on/off (empty keeps)", a.out)
	if err != nil {
		return err
	}
	if v, ok := parseOnOff(answer); ok {
		taskReminders = &v
	}

	updated, err := a.settings.Update(ctx, darkMode, taskReminders)
	if err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Dark mode: %s, task reminders: %s\n",
		onOff(updated.DarkMode), onOff(updated.TaskReminders))
	return nil
}

// DeleteAccount asks for confirmation and removes the account together with
// its tasks.
func (a *App) DeleteAccount(ctx context.Context) error {
	user := a.requireUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("Delete account %s and all its tasks? Type 'yes' to confirm", user.Username), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.identity.DeleteAccount(ctx); err != nil {
		fmt.Fprintln(a.out, errMessage(err))
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}
