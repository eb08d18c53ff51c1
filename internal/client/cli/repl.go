package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, route guard.Route) error
	Reload(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, ids []string) error
	report(ctx context.Context, err error)
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. The loop exits on EOF or "exit"/"quit".
//
//	help                   show available commands
//	login | signup         authenticate
//	logout                 clear the session
//	go <screen> | <screen> open a screen
//	list                   reload the current screen
//	add                    create an item on the current screen
//	edit <id>              edit an item
//	delete <id> [id...]    delete one or more items
//	exit | quit            leave the program
//
// Handler errors are passed to a.report; views show their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gf %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "go" {
			if len(args) != 1 {
				printlnFn("Usage: go <screen>")
				continue
			}
			cmd = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: home, categories, entries, goals, users, report, (l)ist, add, edit <id>, delete <id>..., logout, exit")
			} else {
				printlnFn("Available commands: login, signup, exit")
			}

		case "login":
			a.report(ctx, a.Login(ctx))

		case "signup", "register":
			a.report(ctx, a.Signup(ctx))

		case "logout":
			a.report(ctx, a.Logout(ctx))

		case "l", "list":
			a.report(ctx, a.Reload(ctx))

		case "add":
			a.report(ctx, a.Add(ctx))

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			a.report(ctx, a.Edit(ctx, args[0]))

		case "delete", "rm":
			if len(args) == 0 {
				printlnFn("Usage: delete <id> [id...]")
				continue
			}
			a.report(ctx, a.Delete(ctx, args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			route, err := guard.ParseRoute(cmd)
			if err != nil {
				printlnFn("Unknown command:", cmd)
				continue
			}
			a.report(ctx, a.Open(ctx, route))
		}
	}
}
