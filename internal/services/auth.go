// Package services implements the application operations on top of the API
// client. Each service validates its inputs locally before any network call
// so that form mistakes surface instantly.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

// RegisterForm collects the fields of the sign-up form.
type RegisterForm struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	DOB      *time.Time
}

// ResetForm collects the fields of the password reset form. OTP is the
// numeric code mailed by the forgot-password endpoint.
type ResetForm struct {
	Email    string `validate:"required,email"`
	OTP      string `validate:"required,numeric,min=4,max=8"`
	Password string `validate:"required,min=6"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type emailForm struct {
	Email string `validate:"required,email"`
}

// AuthService handles credential flows: sign-in, sign-up and password reset.
type AuthService struct {
	api      api.Client
	validate *validator.Validate
}

func NewAuthService(client api.Client) *AuthService {
	return &AuthService{api: client, validate: validator.New()}
}

// Login exchanges credentials for a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := s.validate.Struct(loginForm{Email: email, Password: password}); err != nil {
		return models.Session{}, fmt.Errorf("%w: %s", common.ErrorValidation, validationHint(err))
	}
	return s.api.Login(ctx, email, password)
}

// Register creates a new account. The account starts as a regular active
// user; roles are assigned server-side.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) error {
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, validationHint(err))
	}
	return s.api.Register(ctx, api.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		DOB:      form.DOB,
	})
}

// ForgotPassword requests an OTP mail and returns the code's expiry time.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (time.Time, error) {
	if err := s.validate.Struct(emailForm{Email: email}); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", common.ErrorValidation, validationHint(err))
	}
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword redeems an OTP for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, form ResetForm) error {
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, validationHint(err))
	}
	return s.api.ResetPassword(ctx, form.Email, form.OTP, form.Password)
}

// validationHint flattens the first field error into a short message fit for
// a prompt line.
func validationHint(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "email":
			return fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		case "len":
			return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
		case "numeric":
			return fmt.Sprintf("%s must contain digits only", fe.Field())
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	return err.Error()
}
