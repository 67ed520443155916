package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/padips/padips-cli/internal/models"
)

// Feedback prompts for a message and delivers it. Name and email come from
// the session, so the form is a single free-text field.
func (a *App) Feedback(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	message, err := getSimpleText(a.reader, "Your feedback", os.Stdout)
	if err != nil {
		return err
	}

	fb := models.Feedback{Name: user.Name, Email: user.Email, Feedback: message}
	if err := a.community.SendFeedback(ctx, fb); err != nil {
		printlnFn("Could not send feedback:", err.Error())
		return err
	}

	printlnFn("Thanks, your feedback was sent.")
	return nil
}

// Wishes lists today's birthdays.
func (a *App) Wishes(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	birthdays, err := a.community.BirthdaysToday(ctx)
	if err != nil {
		printlnFn("Could not load birthdays:", err.Error())
		return err
	}
	if len(birthdays) == 0 {
		printlnFn("No birthdays today.")
		return nil
	}

	printlnFn("Birthdays today:")
	for _, b := range birthdays {
		printlnFn(fmt.Sprintf("  %s <%s>", b.Name, b.Email))
	}
	return nil
}

// greetBirthdays prints a short birthday line right after login. Failures
// are silent; the greeting is decoration, not a feature the login depends on.
func (a *App) greetBirthdays(ctx context.Context) {
	birthdays, err := a.community.BirthdaysToday(ctx)
	if err != nil || len(birthdays) == 0 {
		return
	}
	names := make([]string, 0, len(birthdays))
	for _, b := range birthdays {
		names = append(names, b.Name)
	}
	printlnFn("Celebrating today:", joinNames(names))
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " and " + names[len(names)-1]
}
