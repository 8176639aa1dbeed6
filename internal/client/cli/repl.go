package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Select(ctx context.Context, path string) error
	Remove(ctx context.Context) error
	Analyze(ctx context.Context) error
	Status(ctx context.Context) error
	Save(ctx context.Context) error
	Export(ctx context.Context, id string) error
	Reports(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, exit"
	helpLoggedIn  = "Available commands: select <path>, remove, analyze, status, save, export [id], reports, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the MRI scan CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            show available commands
//	  - signup          create an account
//	  - login           authenticate
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - select <path>   pick an MRI image
//	  - remove          drop the selected image
//	  - analyze         submit the image (result arrives asynchronously)
//	  - status          show the analysis state
//	  - save            store the result as a report
//	  - export [id]     write a report document
//	  - reports         list saved reports, newest first
//	  - logout          log out
//	  - exit | quit     leave the program
//
// Analysis commands are refused until a session exists. Errors returned by
// handlers are printed as a single line and the loop carries on.
//
// Command prompts read from the same reader, so piped input can carry a
// command followed by its answers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mri %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup", "register":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "select", "remove", "analyze", "status", "save", "export", "reports", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			err = dispatch(ctx, a, cmd, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "select":
		if len(args) == 0 {
			printlnFn("Usage: select <path>")
			return nil
		}
		return a.Select(ctx, strings.Join(args, " "))
	case "remove":
		return a.Remove(ctx)
	case "analyze":
		return a.Analyze(ctx)
	case "status":
		return a.Status(ctx)
	case "save":
		return a.Save(ctx)
	case "export":
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		return a.Export(ctx, id)
	case "reports":
		return a.Reports(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
