// Package exam implements the timed test-taking flow:
//
//	fetch → shuffle → countdown → answer capture → scored submission
//
// with a read-only review mode for tests that were already attempted. The
// submit guard is the only concurrency discipline: every transition into
// Submitting checks-and-sets the flag under the attempt mutex, so a manual
// submit and the countdown expiring can never both fire.
package exam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/padips/padips-cli/internal/logging"
	"github.com/padips/padips-cli/internal/models"
)

// State of an attempt.
type State int

const (
	// StateEmpty is terminal: the server returned no questions.
	StateEmpty State = iota
	// StateReview is terminal: the test was already attempted; answers are
	// read-only and explanations are revealed.
	StateReview
	StateInProgress
	StateSubmitting
	// StateSubmitted is terminal.
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReview:
		return "review"
	case StateInProgress:
		return "in-progress"
	case StateSubmitting:
		return "submitting"
	default:
		return "submitted"
	}
}

var (
	// ErrLocked means the attempt no longer accepts answer mutations.
	ErrLocked = errors.New("attempt is locked")

	// ErrAlreadySubmitted means a submission already succeeded.
	ErrAlreadySubmitted = errors.New("already submitted")

	// ErrSubmitInFlight means a submission is currently running.
	ErrSubmitInFlight = errors.New("submission in flight")

	// ErrOutOfRange means a question or option index does not exist.
	ErrOutOfRange = errors.New("index out of range")
)

// Service is the remote surface the attempt needs. services.TestService
// satisfies it.
type Service interface {
	CheckAttempt(ctx context.Context, test int, email string) (models.AttemptStatus, error)
	Questions(ctx context.Context, test int) ([]models.Question, error)
	Submit(ctx context.Context, test int, score float64, user models.UserProfile) error
}

// Config carries the tunables that have drifted across backend releases.
// TickInterval exists as a test seam and defaults to one second.
type Config struct {
	SecondsPerQuestion int
	PointsPerCorrect   float64
	TickInterval       time.Duration
}

// Attempt is one run of the test-taking flow. Create it with Start; always
// call Close on the way out so the countdown goroutine is cancelled on
// every exit path.
type Attempt struct {
	svc Service
	cfg Config
	log logging.Logger

	test int
	user models.UserProfile

	// onTick, if set, observes every countdown decrement.
	onTick func(remaining int)
	// onExpired, if set, observes the automatic submission triggered by the
	// countdown reaching zero.
	onExpired func(score float64, err error)

	mu         sync.Mutex
	state      State
	questions  []models.Question
	answers    map[int]int
	timeLeft   int
	score      float64
	submitting bool
	cancel     context.CancelFunc
}

// Option configures an Attempt before its timer starts.
type Option func(*Attempt)

// WithTickObserver registers a callback invoked (outside the attempt lock)
// after every countdown decrement.
func WithTickObserver(fn func(remaining int)) Option {
	return func(a *Attempt) { a.onTick = fn }
}

// WithExpiredObserver registers a callback invoked after the countdown
// triggers the automatic submission.
func WithExpiredObserver(fn func(score float64, err error)) Option {
	return func(a *Attempt) { a.onExpired = fn }
}

// Start queries attempt status and the question set, then either enters
// review mode (already attempted), the empty state (no questions), or a
// fresh in-progress run with a shuffled order and a running countdown of
// len(questions) × SecondsPerQuestion seconds.
func Start(ctx context.Context, svc Service, cfg Config, log logging.Logger, test int, user models.UserProfile, opts ...Option) (*Attempt, error) {
	a := &Attempt{
		svc:     svc,
		cfg:     cfg,
		log:     log.With("component", "exam", "test", test),
		test:    test,
		user:    user,
		answers: make(map[int]int),
	}
	for _, opt := range opts {
		opt(a)
	}

	status, err := svc.CheckAttempt(ctx, test, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check attempt for test %d: %w", test, err)
	}

	questions, err := svc.Questions(ctx, test)
	if err != nil {
		return nil, fmt.Errorf("load questions for test %d: %w", test, err)
	}

	if len(questions) == 0 {
		a.state = StateEmpty
		return a, nil
	}

	if status.Attempted {
		// Original order, answers locked, explanations shown.
		a.state = StateReview
		a.questions = questions
		a.score = status.Score
		return a, nil
	}

	a.state = StateInProgress
	a.questions = ShuffleQuestions(questions)
	a.timeLeft = len(a.questions) * cfg.SecondsPerQuestion

	timerCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go a.runTimer(timerCtx)

	return a, nil
}

func (a *Attempt) tickInterval() time.Duration {
	if a.cfg.TickInterval > 0 {
		return a.cfg.TickInterval
	}
	return time.Second
}

// runTimer decrements the countdown once per interval. Reaching zero
// triggers the automatic submission exactly once; if that submission fails
// the clock stays at zero and the user must resubmit manually.
func (a *Attempt) runTimer(ctx context.Context) {
	ticker := time.NewTicker(a.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired := false
			var remaining int

			a.mu.Lock()
			if a.state == StateInProgress && !a.submitting && a.timeLeft > 0 {
				a.timeLeft--
				remaining = a.timeLeft
				if a.timeLeft == 0 {
					expired = true
				}
			} else {
				a.mu.Unlock()
				continue
			}
			a.mu.Unlock()

			if a.onTick != nil {
				a.onTick(remaining)
			}

			if expired {
				score, err := a.submit(ctx)
				if a.onExpired != nil {
					a.onExpired(score, err)
				}
				if err == nil {
					return
				}
				a.log.Warn(ctx, "automatic submission failed", "error", err)
			}
		}
	}
}

// State reports the current state.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// TimeLeft reports the remaining seconds (0 outside InProgress).
func (a *Attempt) TimeLeft() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timeLeft
}

// Len reports the number of questions.
func (a *Attempt) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.questions)
}

// Test reports the test number of this attempt.
func (a *Attempt) Test() int { return a.test }

// Question returns the question at index i in presentation order.
func (a *Attempt) Question(i int) (models.Question, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i < 0 || i >= len(a.questions) {
		return models.Question{}, ErrOutOfRange
	}
	return a.questions[i], nil
}

// AnswerFor returns the recorded option index for question i, if any.
func (a *Attempt) AnswerFor(i int) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.answers[i]
	return n, ok
}

// Answer records option `choice` for question i. At most one answer per
// question is kept; reselection overwrites. Rejected outside InProgress.
func (a *Attempt) Answer(i, choice int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateInProgress {
		return ErrLocked
	}
	if i < 0 || i >= len(a.questions) {
		return ErrOutOfRange
	}
	if choice < 0 || choice >= len(a.questions[i].Options) {
		return ErrOutOfRange
	}

	a.answers[i] = choice
	return nil
}

// Score returns the final score once Submitted, or the server-reported
// score in review mode.
func (a *Attempt) Score() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.score
}

// scoreLocked computes the score from the recorded answers. Caller holds
// a.mu. Unanswered and wrong entries contribute zero.
func (a *Attempt) scoreLocked() float64 {
	var score float64
	for i, q := range a.questions {
		if choice, ok := a.answers[i]; ok && choice == q.CorrectAnswer {
			score += a.cfg.PointsPerCorrect
		}
	}
	return score
}

// Submit grades the attempt and sends the result. On success the attempt is
// locked; repeated calls return ErrAlreadySubmitted. On failure the attempt
// returns to InProgress and the caller may retry manually.
func (a *Attempt) Submit(ctx context.Context) (float64, error) {
	return a.submit(ctx)
}

func (a *Attempt) submit(ctx context.Context) (float64, error) {
	a.mu.Lock()
	switch {
	case a.state == StateSubmitted:
		a.mu.Unlock()
		return 0, ErrAlreadySubmitted
	case a.state == StateReview || a.state == StateEmpty:
		a.mu.Unlock()
		return 0, ErrLocked
	case a.submitting:
		a.mu.Unlock()
		return 0, ErrSubmitInFlight
	}
	a.submitting = true
	a.state = StateSubmitting
	score := a.scoreLocked()
	a.mu.Unlock()

	err := a.svc.Submit(ctx, a.test, score, a.user)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitting = false
	if err != nil {
		a.state = StateInProgress
		return 0, fmt.Errorf("submit test %d: %w", a.test, err)
	}

	a.state = StateSubmitted
	a.score = score
	a.stopTimerLocked()
	return score, nil
}

func (a *Attempt) stopTimerLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Close cancels the countdown. Safe to call multiple times and required on
// every exit path from the flow.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTimerLocked()
}
