package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// errNotLoggedIn guards commands that need a session.
var errNotLoggedIn = errors.New("not logged in")

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	ListTests(ctx context.Context) error
	TakeTest(ctx context.Context, arg string) error
	ReviewTest(ctx context.Context, arg string) error
	LearnTest(ctx context.Context, arg string) error
	Profile(ctx context.Context) error
	Leaderboard(ctx context.Context) error
	Feedback(ctx context.Context) error
	Wishes(ctx context.Context) error
	Users(ctx context.Context, query string) error
	Suspend(ctx context.Context, arg string) error
	Activate(ctx context.Context, arg string) error
	Logout(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Handlers print their own errors; the loop only reports validation and
// session problems so one failed command never kills the shell.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("padips %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = strings.Join(parts[1:], " ")
		}

		var err error
		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "forgot":
			err = a.Forgot(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "t", "tests":
			err = a.ListTests(ctx)

		case "take":
			err = a.TakeTest(ctx, arg)

		case "review":
			err = a.ReviewTest(ctx, arg)

		case "learn":
			err = a.LearnTest(ctx, arg)

		case "profile":
			err = a.Profile(ctx)

		case "board", "leaderboard":
			err = a.Leaderboard(ctx)

		case "feedback":
			err = a.Feedback(ctx)

		case "wishes":
			err = a.Wishes(ctx)

		case "users":
			err = a.Users(ctx, arg)

		case "suspend":
			err = a.Suspend(ctx, arg)

		case "activate":
			err = a.Activate(ctx, arg)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, errNotLoggedIn) {
			printlnFn("Please login first.")
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, forgot, reset, exit")
		return
	}
	printlnFn("Available commands: (t)ests, take <n>, review <n>, learn <n>, profile, leaderboard, feedback, wishes, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: users [query], suspend <id>, activate <id>")
	}
}
