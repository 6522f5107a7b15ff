package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, filter string) error
	Done(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	ClearCompleted(ctx context.Context) error
	Stats(ctx context.Context) error
	Calendar(ctx context.Context, arg string) error
	Export(ctx context.Context) error
	Profile(ctx context.Context) error
	Password(ctx context.Context) error
	Settings(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

func (a *App) getStatus() string {
	if u := a.identity.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// Root runs the interactive loop on standard input until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to TaskFlow CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tf %s> ", statusFn()))
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
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist [all|active|completed], done <id>, edit <id>, del <id>, clear, stats, cal [YYYY-MM-DD], export, profile, passwd, settings, delacc, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx, arg)

		case "done":
			_ = a.Done(ctx, arg)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "del":
			_ = a.Delete(ctx, arg)

		case "clear":
			_ = a.ClearCompleted(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "cal":
			_ = a.Calendar(ctx, arg)

		case "export":
			_ = a.Export(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "passwd":
			_ = a.Password(ctx)

		case "settings":
			_ = a.Settings(ctx)

		case "delacc":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
