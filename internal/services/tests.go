package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/padips/padips-cli/internal/api"
	"github.com/padips/padips-cli/internal/models"
)

// TestSummary is one row of the test listing: its attempt state plus
// whether the user may start it yet.
type TestSummary struct {
	Number    int
	Attempted bool
	Score     float64
	Unlocked  bool
}

// TestService exposes the test catalogue and the submission path. It
// satisfies exam.Service so a running attempt talks to the same instance.
type TestService struct {
	api api.Client
}

func NewTestService(client api.Client) *TestService {
	return &TestService{api: client}
}

// Summaries lists every published test for the given user, in ascending
// order. Progression is strictly sequential: test 1 is always available and
// test n opens once test n-1 has been attempted.
func (s *TestService) Summaries(ctx context.Context, email string) ([]TestSummary, error) {
	numbers, err := s.api.Tests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	sort.Ints(numbers)

	attempted := make(map[int]models.AttemptStatus, len(numbers))
	for _, n := range numbers {
		st, err := s.api.CheckAttempt(ctx, n, email)
		if err != nil {
			return nil, fmt.Errorf("check attempt for test %d: %w", n, err)
		}
		attempted[n] = st
	}

	out := make([]TestSummary, 0, len(numbers))
	for _, n := range numbers {
		st := attempted[n]
		out = append(out, TestSummary{
			Number:    n,
			Attempted: st.Attempted,
			Score:     st.Score,
			Unlocked:  n == 1 || attempted[n-1].Attempted,
		})
	}
	return out, nil
}

// CheckAttempt reports whether the user already took the test.
func (s *TestService) CheckAttempt(ctx context.Context, test int, email string) (models.AttemptStatus, error) {
	return s.api.CheckAttempt(ctx, test, email)
}

// Questions fetches the question set of a test, in server order.
func (s *TestService) Questions(ctx context.Context, test int) ([]models.Question, error) {
	return s.api.Questions(ctx, test)
}

// Submit records the user's score for a test.
func (s *TestService) Submit(ctx context.Context, test int, score float64, user models.UserProfile) error {
	return s.api.SubmitTest(ctx, test, score, user.Email, user.Name)
}

// ProfileScores returns the user's per-test results.
func (s *TestService) ProfileScores(ctx context.Context, email string) ([]models.TestScore, error) {
	return s.api.ProfileScores(ctx, email)
}

// Leaderboard returns the ranked aggregate standings.
func (s *TestService) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	return s.api.Leaderboard(ctx)
}
