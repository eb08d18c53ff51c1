// Package cli provides the interactive gophfinance command-line client.
//
// It wires configuration, the session store, the backend API and the view
// controllers into a read-eval-print loop. The user moves between screens
// (home, categories, entries, goals, users, report); protected screens go
// through the route guard, which sends the user to the login screen when no
// session token is stored.
//
// Commands available on every screen:
//   - help, login, signup, logout, exit
//   - go <screen> (or just the screen name)
//   - list, add, edit <id>, delete <id> [id...] on the current screen
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
