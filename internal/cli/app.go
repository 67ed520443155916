// Package cli implements the interactive terminal frontend: a REPL that
// drives the auth, test-taking, moderation and community flows.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/padips/padips-cli/internal/config"
	"github.com/padips/padips-cli/internal/exam"
	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/models"
	"github.com/padips/padips-cli/internal/services"
	"github.com/padips/padips-cli/internal/session"
)

// AuthService is the credential surface the CLI needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, form services.RegisterForm) error
	ForgotPassword(ctx context.Context, email string) (time.Time, error)
	ResetPassword(ctx context.Context, form services.ResetForm) error
}

// TestService covers the catalogue, attempt and result operations. Its
// method set includes exam.Service, so a running attempt reuses the same
// instance.
type TestService interface {
	Summaries(ctx context.Context, email string) ([]services.TestSummary, error)
	CheckAttempt(ctx context.Context, test int, email string) (models.AttemptStatus, error)
	Questions(ctx context.Context, test int) ([]models.Question, error)
	Submit(ctx context.Context, test int, score float64, user models.UserProfile) error
	ProfileScores(ctx context.Context, email string) ([]models.TestScore, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
}

// AdminService covers the moderation operations.
type AdminService interface {
	Users(ctx context.Context) ([]models.UserProfile, error)
	Suspend(ctx context.Context, userID, reason string) error
	Activate(ctx context.Context, userID string) error
}

// CommunityService covers feedback and birthday greetings.
type CommunityService interface {
	SendFeedback(ctx context.Context, fb models.Feedback) error
	BirthdaysToday(ctx context.Context) ([]models.Birthday, error)
}

// SessionManager is the slice of session.Manager the CLI consumes.
type SessionManager interface {
	Load(ctx context.Context) error
	Login(ctx context.Context, s models.Session) error
	Logout(ctx context.Context) error
	Current() *models.Session
	State() session.State
}

var _ SessionManager = (*session.Manager)(nil)
var _ AuthService = (*services.AuthService)(nil)
var _ TestService = (*services.TestService)(nil)
var _ AdminService = (*services.AdminService)(nil)
var _ CommunityService = (*services.CommunityService)(nil)

type App struct {
	config    *config.Config
	log       logging.Logger
	auth      AuthService
	tests     TestService
	admin     AdminService
	community CommunityService
	sessions  SessionManager
	reader    *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger, auth AuthService, tests TestService, admin AdminService, community CommunityService, sessions SessionManager) *App {
	return &App{
		config:    cfg,
		log:       log,
		auth:      auth,
		tests:     tests,
		admin:     admin,
		community: community,
		sessions:  sessions,
		reader:    bufio.NewReader(os.Stdin),
	}
}

// Run restores any persisted session, then hands control to the REPL until
// the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to PADIPS (type 'help' for commands)")

	if err := a.sessions.Load(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}
	if s := a.sessions.Current(); s != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", s.User.Name))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.State() == session.StateAuthenticated
}

func (a *App) isAdmin() bool {
	s := a.sessions.Current()
	return s != nil && s.User.IsAdmin()
}

// currentUser returns the signed-in profile or common.ErrorSessionExpired.
func (a *App) currentUser() (models.UserProfile, error) {
	s := a.sessions.Current()
	if s == nil {
		return models.UserProfile{}, errNotLoggedIn
	}
	return s.User, nil
}

func (a *App) getStatus() string {
	s := a.sessions.Current()
	if s == nil {
		return ""
	}
	if s.User.IsAdmin() {
		return fmt.Sprintf("(%s admin)", s.User.Name)
	}
	return fmt.Sprintf("(%s)", s.User.Name)
}

// ForceLogoutNotice is the session.NoticeFunc wired in main. It interrupts
// whatever the user is doing with the moderation banner.
func ForceLogoutNotice(title, reason string) {
	fmt.Println()
	fmt.Println("!", title)
	if reason != "" {
		fmt.Println("Reason:", reason)
	}
	fmt.Println("You have been signed out.")
}

func (a *App) examConfig() exam.Config {
	return exam.Config{
		SecondsPerQuestion: a.config.SecondsPerQuestion,
		PointsPerCorrect:   a.config.PointsPerCorrect,
	}
}
