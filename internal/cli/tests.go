package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/padips/padips-cli/internal/exam"
)

// parseTestNumber reads a positive test number from a command argument.
func parseTestNumber(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("expected a test number, got %q", arg)
	}
	return n, nil
}

// formatClock renders a second count as m:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ListTests prints the catalogue with attempt state and lock status.
func (a *App) ListTests(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	summaries, err := a.tests.Summaries(ctx, user.Email)
	if err != nil {
		printlnFn("Could not load tests:", err.Error())
		return err
	}
	if len(summaries) == 0 {
		printlnFn("No tests published yet.")
		return nil
	}

	for _, s := range summaries {
		switch {
		case s.Attempted:
			printlnFn(fmt.Sprintf("  Test %d  completed, score %.1f  (review %d)", s.Number, s.Score, s.Number))
		case s.Unlocked:
			printlnFn(fmt.Sprintf("  Test %d  available  (take %d)", s.Number, s.Number))
		default:
			printlnFn(fmt.Sprintf("  Test %d  locked, finish test %d first", s.Number, s.Number-1))
		}
	}
	return nil
}

// TakeTest starts a timed attempt at test n and runs the interactive
// question loop until submission, expiry or abandonment.
func (a *App) TakeTest(ctx context.Context, arg string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	n, err := parseTestNumber(arg)
	if err != nil {
		printlnFn("Usage: take <test number>")
		return err
	}

	if n > 1 {
		prev, err := a.tests.CheckAttempt(ctx, n-1, user.Email)
		if err != nil {
			printlnFn("Could not check progress:", err.Error())
			return err
		}
		if !prev.Attempted {
			printlnFn(fmt.Sprintf("Test %d is locked. Finish test %d first.", n, n-1))
			return nil
		}
	}

	att, err := exam.Start(ctx, a.tests, a.examConfig(), a.log, n, user,
		exam.WithExpiredObserver(func(score float64, err error) {
			if err != nil {
				printlnFn("Time is up, but the submission failed:", err.Error())
				printlnFn("Type 'submit' to retry.")
				return
			}
			printlnFn(fmt.Sprintf("Time is up! Your score was submitted: %.1f", score))
			printlnFn("Press Enter to continue.")
		}),
	)
	if err != nil {
		printlnFn("Could not start the test:", err.Error())
		return err
	}
	defer att.Close()

	switch att.State() {
	case exam.StateEmpty:
		printlnFn(fmt.Sprintf("Test %d has no questions yet.", n))
		return nil
	case exam.StateReview:
		printlnFn(fmt.Sprintf("You already took test %d (score %.1f). Showing review.", n, att.Score()))
		a.printReview(att)
		return nil
	}

	printlnFn(fmt.Sprintf("Test %d: %d questions, %s on the clock.", n, att.Len(), formatClock(att.TimeLeft())))
	printlnFn("Answer with the option number. Commands: n(ext), p(rev), submit, quit.")
	return a.runAttempt(ctx, att)
}

// runAttempt is the per-question input loop of an in-progress attempt.
func (a *App) runAttempt(ctx context.Context, att *exam.Attempt) error {
	i := 0
	for {
		if att.State() == exam.StateSubmitted {
			return nil
		}
		a.printQuestion(att, i)

		line, err := getSimpleText(a.reader, "", os.Stdout)
		if err != nil {
			return err
		}

		// the clock may have run out while we were blocked on input
		if att.State() == exam.StateSubmitted {
			return nil
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "n", "next":
			if i < att.Len()-1 {
				i++
			}
		case "p", "prev":
			if i > 0 {
				i--
			}
		case "submit":
			ok, err := confirm(a.reader, "Submit your answers now?", os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			score, err := att.Submit(ctx)
			if err != nil {
				printlnFn("Submission failed:", err.Error())
				printlnFn("Your answers are kept. Type 'submit' to retry.")
				continue
			}
			printlnFn(fmt.Sprintf("Submitted! Your score: %.1f", score))
			return nil
		case "quit", "exit":
			ok, err := confirm(a.reader, "The test is still running. Abandon without submitting?", os.Stdout)
			if err != nil {
				return err
			}
			if ok {
				printlnFn("Attempt abandoned.")
				return nil
			}
		default:
			choice, err := strconv.Atoi(line)
			if err != nil {
				printlnFn("Answer with an option number, or n/p/submit/quit.")
				continue
			}
			if err := att.Answer(i, choice-1); err != nil {
				printlnFn("That option does not exist.")
				continue
			}
			if i < att.Len()-1 {
				i++
			}
		}
	}
}

func (a *App) printQuestion(att *exam.Attempt, i int) {
	q, err := att.Question(i)
	if err != nil {
		return
	}
	printlnFn(fmt.Sprintf("[%s] Question %d of %d", formatClock(att.TimeLeft()), i+1, att.Len()))
	printlnFn(q.Prompt.String())
	if q.ImageURL != nil {
		printlnFn("(image:", *q.ImageURL+")")
	}
	picked, answered := att.AnswerFor(i)
	for j, opt := range q.Options {
		marker := " "
		if answered && picked == j {
			marker = "*"
		}
		printlnFn(fmt.Sprintf(" %s %d. %s", marker, j+1, opt.String()))
	}
}

// ReviewTest shows the questions of a completed test with the correct
// answers and explanations.
func (a *App) ReviewTest(ctx context.Context, arg string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}
	n, err := parseTestNumber(arg)
	if err != nil {
		printlnFn("Usage: review <test number>")
		return err
	}

	st, err := a.tests.CheckAttempt(ctx, n, user.Email)
	if err != nil {
		printlnFn("Could not load the attempt:", err.Error())
		return err
	}
	if !st.Attempted {
		printlnFn(fmt.Sprintf("You have not taken test %d yet.", n))
		return nil
	}

	att, err := exam.Start(ctx, a.tests, a.examConfig(), a.log, n, user)
	if err != nil {
		printlnFn("Could not load the test:", err.Error())
		return err
	}
	defer att.Close()

	printlnFn(fmt.Sprintf("Test %d review. Your score: %.1f", n, att.Score()))
	a.printReview(att)
	return nil
}

func (a *App) printReview(att *exam.Attempt) {
	for i := 0; i < att.Len(); i++ {
		q, err := att.Question(i)
		if err != nil {
			return
		}
		printlnFn(fmt.Sprintf("Question %d: %s", i+1, q.Prompt.String()))
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			printlnFn("  Answer:", q.Options[q.CorrectAnswer].String())
		}
		if q.Explanation.String() != "" {
			printlnFn("  Why:", q.Explanation.String())
		}
	}
}

// LearnTest prints a test's questions with answers and explanations as
// study material, without starting an attempt.
func (a *App) LearnTest(ctx context.Context, arg string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	n, err := parseTestNumber(arg)
	if err != nil {
		printlnFn("Usage: learn <test number>")
		return err
	}

	qs, err := a.tests.Questions(ctx, n)
	if err != nil {
		printlnFn("Could not load the material:", err.Error())
		return err
	}
	if len(qs) == 0 {
		printlnFn(fmt.Sprintf("Test %d has no questions yet.", n))
		return nil
	}

	printlnFn(fmt.Sprintf("Test %d study material, %d questions.", n, len(qs)))
	for i, q := range qs {
		printlnFn(fmt.Sprintf("Question %d: %s", i+1, q.Prompt.String()))
		if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			printlnFn("  Answer:", q.Options[q.CorrectAnswer].String())
		}
		if q.Explanation.String() != "" {
			printlnFn("  Why:", q.Explanation.String())
		}
	}
	return nil
}

// Profile prints the user's per-test scores and the running total.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	scores, err := a.tests.ProfileScores(ctx, user.Email)
	if err != nil {
		printlnFn("Could not load your scores:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.Name, user.Email))
	if len(scores) == 0 {
		printlnFn("No tests taken yet.")
		return nil
	}

	var total float64
	for _, s := range scores {
		printlnFn(fmt.Sprintf("  Test %d: %.1f", s.Test, s.Score))
		total += s.Score
	}
	printlnFn(fmt.Sprintf("Total: %.1f over %d tests", total, len(scores)))
	return nil
}

// Leaderboard prints the ranked standings.
func (a *App) Leaderboard(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	rows, err := a.tests.Leaderboard(ctx)
	if err != nil {
		printlnFn("Could not load the leaderboard:", err.Error())
		return err
	}
	if len(rows) == 0 {
		printlnFn("The leaderboard is empty.")
		return nil
	}

	medals := []string{"gold", "silver", "bronze"}
	for i, r := range rows {
		medal := ""
		if i < len(medals) {
			medal = "  [" + medals[i] + "]"
		}
		printlnFn(fmt.Sprintf("%3d. %-24s %2d tests  total %.1f  avg %.1f%s", i+1, r.Name, r.Tests, r.TotalScore, r.AvgScore, medal))
	}
	return nil
}
