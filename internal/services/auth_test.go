package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

func TestAuthService_Login(t *testing.T) {
	fake := &fakeClient{loginSession: models.Session{
		Token: "tok",
		User:  models.UserProfile{Email: "a@b.org", Name: "A"},
	}}
	svc := NewAuthService(fake)

	sess, err := svc.Login(context.Background(), "a@b.org", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "a@b.org", fake.loginEmail)
	assert.Equal(t, "secret1", fake.loginPass)
}

func TestAuthService_LoginValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret1"},
		{"malformed email", "not-an-email", "secret1"},
		{"empty password", "a@b.org", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{}
			_, err := NewAuthService(fake).Login(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Empty(t, fake.loginEmail, "remote call must not happen")
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	dob := time.Date(1998, 4, 12, 0, 0, 0, 0, time.UTC)
	fake := &fakeClient{}
	svc := NewAuthService(fake)

	err := svc.Register(context.Background(), RegisterForm{
		Name:     "Anitha",
		Email:    "anitha@example.org",
		Password: "secret1",
		DOB:      &dob,
	})
	require.NoError(t, err)
	require.NotNil(t, fake.registerReq)
	assert.Equal(t, "Anitha", fake.registerReq.Name)
	require.NotNil(t, fake.registerReq.DOB)
	assert.Equal(t, dob, *fake.registerReq.DOB)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	fake := &fakeClient{}
	err := NewAuthService(fake).Register(context.Background(), RegisterForm{
		Name:     "A",
		Email:    "anitha@example.org",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Nil(t, fake.registerReq)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	expiry := time.Now().Add(10 * time.Minute)
	fake := &fakeClient{forgotExpiry: expiry}
	svc := NewAuthService(fake)

	got, err := svc.ForgotPassword(context.Background(), "a@b.org")
	require.NoError(t, err)
	assert.Equal(t, expiry, got)

	_, err = svc.ForgotPassword(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestAuthService_ResetPassword(t *testing.T) {
	fake := &fakeClient{}
	svc := NewAuthService(fake)

	err := svc.ResetPassword(context.Background(), ResetForm{
		Email:    "a@b.org",
		OTP:      "482910",
		Password: "newpass1",
	})
	require.NoError(t, err)
	assert.Equal(t, "482910", fake.resetOTP)
	assert.Equal(t, "newpass1", fake.resetPass)
}

func TestAuthService_ResetPasswordValidation(t *testing.T) {
	tests := []struct {
		name string
		form ResetForm
	}{
		{"short otp", ResetForm{Email: "a@b.org", OTP: "12", Password: "newpass1"}},
		{"non-numeric otp", ResetForm{Email: "a@b.org", OTP: "12a456", Password: "newpass1"}},
		{"short password", ResetForm{Email: "a@b.org", OTP: "123456", Password: "np"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{}
			err := NewAuthService(fake).ResetPassword(context.Background(), tt.form)
			assert.ErrorIs(t, err, common.ErrorValidation)
			assert.Empty(t, fake.resetOTP)
		})
	}
}
