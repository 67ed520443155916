package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getOptionalDate = GetOptionalDate
var confirm = Confirm

// Login prompts for credentials, authenticates and activates the session.
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	if err := a.sessions.Login(ctx, sess); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", sess.User.Name))
	a.greetBirthdays(ctx)
	return nil
}

// Register prompts for the sign-up form and creates an account. The user
// still logs in explicitly afterwards.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	dob, err := getOptionalDate(a.reader, "Date of birth", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	form := services.RegisterForm{Name: name, Email: email, Password: string(password), DOB: dob}
	if err := a.auth.Register(ctx, form); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created. You can login now.")
	return nil
}

// Forgot requests a password reset OTP for an email address.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	expiry, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		printlnFn("Could not send reset code:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("A reset code was sent to %s. It expires at %s.", email, expiry.Format("15:04")))
	printlnFn("Use 'reset' to set a new password.")
	return nil
}

// Reset redeems an OTP for a new password.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	otp, err := getSimpleText(a.reader, "Enter the code from the email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := services.ResetForm{Email: email, OTP: otp, Password: string(password)}
	if err := a.auth.ResetPassword(ctx, form); err != nil {
		printlnFn("Reset failed:", err.Error())
		return err
	}

	printlnFn("Password updated. You can login now.")
	return nil
}

// Logout ends the session and clears the persisted copy.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}
