package services

import (
	"context"
	"time"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/models"
)

// fakeClient records calls and plays back canned responses. Only the fields
// a test sets matter; the rest stay zero.
type fakeClient struct {
	loginSession models.Session
	loginErr     error
	loginEmail   string
	loginPass    string

	registerReq *api.RegisterRequest
	registerErr error

	forgotExpiry time.Time
	forgotErr    error
	forgotEmail  string

	resetErr   error
	resetEmail string
	resetOTP   string
	resetPass  string

	tests    []int
	testsErr error

	attempts   map[int]models.AttemptStatus
	attemptErr error

	questions    []models.Question
	questionsErr error

	submitTest  int
	submitScore float64
	submitEmail string
	submitName  string
	submitErr   error

	scores    []models.TestScore
	scoresErr error

	board    []models.LeaderboardRow
	boardErr error

	users    []models.UserProfile
	usersErr error

	suspendedID     string
	suspendedReason string
	suspendErr      error

	activatedID string
	activateErr error

	feedback    *models.Feedback
	feedbackErr error

	birthdays    []models.Birthday
	birthdaysErr error
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, email, password string) (models.Session, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginSession, f.loginErr
}

func (f *fakeClient) Register(_ context.Context, req api.RegisterRequest) error {
	f.registerReq = &req
	return f.registerErr
}

func (f *fakeClient) ForgotPassword(_ context.Context, email string) (time.Time, error) {
	f.forgotEmail = email
	return f.forgotExpiry, f.forgotErr
}

func (f *fakeClient) ResetPassword(_ context.Context, email, otp, password string) error {
	f.resetEmail, f.resetOTP, f.resetPass = email, otp, password
	return f.resetErr
}

func (f *fakeClient) Tests(context.Context) ([]int, error) {
	return f.tests, f.testsErr
}

func (f *fakeClient) CheckAttempt(_ context.Context, test int, _ string) (models.AttemptStatus, error) {
	if f.attemptErr != nil {
		return models.AttemptStatus{}, f.attemptErr
	}
	return f.attempts[test], nil
}

func (f *fakeClient) Questions(context.Context, int) ([]models.Question, error) {
	return f.questions, f.questionsErr
}

func (f *fakeClient) SubmitTest(_ context.Context, test int, score float64, email, name string) error {
	f.submitTest, f.submitScore, f.submitEmail, f.submitName = test, score, email, name
	return f.submitErr
}

func (f *fakeClient) ProfileScores(context.Context, string) ([]models.TestScore, error) {
	return f.scores, f.scoresErr
}

func (f *fakeClient) Leaderboard(context.Context) ([]models.LeaderboardRow, error) {
	return f.board, f.boardErr
}

func (f *fakeClient) AdminUsers(context.Context) ([]models.UserProfile, error) {
	return f.users, f.usersErr
}

func (f *fakeClient) SuspendUser(_ context.Context, userID, reason string) error {
	f.suspendedID, f.suspendedReason = userID, reason
	return f.suspendErr
}

func (f *fakeClient) ActivateUser(_ context.Context, userID string) error {
	f.activatedID = userID
	return f.activateErr
}

func (f *fakeClient) SendFeedback(_ context.Context, fb models.Feedback) error {
	f.feedback = &fb
	return f.feedbackErr
}

func (f *fakeClient) BirthdaysToday(context.Context) ([]models.Birthday, error) {
	return f.birthdays, f.birthdaysErr
}

func (f *fakeClient) SetToken(string)                  {}
func (f *fakeClient) ClearToken()                      {}
func (f *fakeClient) OnSessionRevoked(func(reason string)) {}
