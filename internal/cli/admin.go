package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/padips/padips-cli/internal/services"
)

// errNotAdmin guards the moderation commands.
var errNotAdmin = errors.New("admin role required")

func (a *App) requireAdmin() error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	if !a.isAdmin() {
		printlnFn("This command needs the admin role.")
		return errNotAdmin
	}
	return nil
}

// Users lists accounts, optionally filtered by an email substring. The
// query "blocked" narrows the list to suspended accounts.
func (a *App) Users(ctx context.Context, query string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	users, err := a.admin.Users(ctx)
	if err != nil {
		printlnFn("Could not load users:", err.Error())
		return err
	}

	if strings.EqualFold(strings.TrimSpace(query), "blocked") {
		users = services.Blocked(users)
	} else {
		users = services.FilterByEmail(users, query)
	}

	if len(users) == 0 {
		printlnFn("No matching users.")
		return nil
	}
	for _, u := range users {
		state := string(u.Status)
		if u.IsBlocked {
			state = "blocked"
		}
		printlnFn(fmt.Sprintf("  %-26s %-30s %-6s %s", u.ID, u.Email, u.Role, state))
	}
	return nil
}

// Suspend blocks an account. The reason is mandatory and is shown to the
// user in the force-logout notice on their device.
func (a *App) Suspend(ctx context.Context, arg string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	userID := strings.TrimSpace(arg)
	if userID == "" {
		printlnFn("Usage: suspend <user id>")
		return nil
	}

	reason, err := getSimpleText(a.reader, "Reason for suspension", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.admin.Suspend(ctx, userID, reason); err != nil {
		printlnFn("Suspension failed:", err.Error())
		return err
	}

	printlnFn("User suspended. Their session has been revoked.")
	return nil
}

// Activate lifts a suspension after an explicit confirmation.
func (a *App) Activate(ctx context.Context, arg string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	userID := strings.TrimSpace(arg)
	if userID == "" {
		printlnFn("Usage: activate <user id>")
		return nil
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Reactivate user %s?", userID), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.admin.Activate(ctx, userID); err != nil {
		printlnFn("Activation failed:", err.Error())
		return err
	}

	printlnFn("User reactivated.")
	return nil
}
