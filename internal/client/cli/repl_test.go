package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
)

type fakeExec struct {
	loggedIn bool

	calls    []string
	reported []error
	openErr  error
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Open(_ context.Context, r guard.Route) error {
	f.calls = append(f.calls, "open "+string(r))
	return f.openErr
}
func (f *fakeExec) Reload(context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Add(context.Context) error    { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	f.calls = append(f.calls, "edit "+id)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, ids []string) error {
	f.calls = append(f.calls, "delete "+strings.Join(ids, ","))
	return nil
}
func (f *fakeExec) report(_ context.Context, err error) {
	if err != nil {
		f.reported = append(f.reported, err)
	}
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func script(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silence(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" }, script(
		"help",
		"login",
		"categories",
		"go goals",
		"l",
		"add",
		"edit 3",
		"delete 4 5",
		"rm 6",
		"register",
		"logout",
		"exit",
		"list",
	))

	assert.Equal(t, []string{
		"login",
		"open categories",
		"open goals",
		"list",
		"add",
		"edit 3",
		"delete 4,5",
		"delete 6",
		"signup",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := silence(t)
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, script(
		"edit",
		"delete",
		"go",
		"go nowhere",
		"foobar",
		"quit",
	))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: edit <id>")
	assert.Contains(t, *out, "Usage: delete <id> [id...]")
	assert.Contains(t, *out, "Usage: go <screen>")
	assert.Contains(t, *out, "Unknown command: nowhere")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := silence(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, script("help"))
	assert.Contains(t, *out, "Available commands: login, signup, exit")
}

func TestRunREPL_ReportsErrorsAndStopsAtEOF(t *testing.T) {
	silence(t)
	boom := errors.New("boom")
	exec := &fakeExec{openErr: boom}

	runREPL(context.Background(), exec, func() string { return "" }, script("report"))

	assert.Equal(t, []string{"open report"}, exec.calls)
	assert.Equal(t, []error{boom}, exec.reported)
}
