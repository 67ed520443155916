// Package api contains the typed client for the PADIPS backend HTTP API.
// All parsing of response shapes happens here; callers get domain models or
// a sentinel error, never raw maps.
package api

import (
	"context"
	"time"

	"github.com/padips/padips-cli/internal/models"
)

// RegisterRequest is the payload for account creation. DOB is optional and
// only used for birthday greetings.
type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	DOB      *time.Time `json:"dob,omitempty"`
}

// Client defines the remote operations the application consumes.
//
// Contract:
//   - Every method honors context cancellation and deadlines.
//   - Methods return domain models on success; failures map to the sentinel
//     errors in errors.go (match with errors.Is).
//   - SetToken/ClearToken control the bearer token attached to every
//     outgoing request. The token is opaque; it is never inspected locally.
//   - OnSessionRevoked registers the hook invoked when any response comes
//     back 403 with the forceLogout flag set, regardless of which call
//     triggered it.
type Client interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, req RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) (time.Time, error)
	ResetPassword(ctx context.Context, email, otp, password string) error

	Tests(ctx context.Context) ([]int, error)
	CheckAttempt(ctx context.Context, test int, email string) (models.AttemptStatus, error)
	Questions(ctx context.Context, test int) ([]models.Question, error)
	SubmitTest(ctx context.Context, test int, score float64, email, name string) error
	ProfileScores(ctx context.Context, email string) ([]models.TestScore, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)

	AdminUsers(ctx context.Context) ([]models.UserProfile, error)
	SuspendUser(ctx context.Context, userID, reason string) error
	ActivateUser(ctx context.Context, userID string) error

	SendFeedback(ctx context.Context, fb models.Feedback) error
	BirthdaysToday(ctx context.Context) ([]models.Birthday, error)

	SetToken(token string)
	ClearToken()
	OnSessionRevoked(hook func(reason string))
}
