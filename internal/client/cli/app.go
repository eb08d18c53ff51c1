package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophfinance/internal/client/client"
	"github.com/dmitrijs2005/gophfinance/internal/client/config"
	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
	"github.com/dmitrijs2005/gophfinance/internal/client/session"
	"github.com/dmitrijs2005/gophfinance/internal/client/storage"
	"github.com/dmitrijs2005/gophfinance/internal/client/views"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

type App struct {
	log     logging.Logger
	session *session.Manager
	router  *guard.Router
	console *Console
	in      *bufio.Reader
	out     io.Writer

	login   *views.LoginView
	signup  *views.SignupView
	home    *views.HomeView
	screens map[guard.Route]screen
}

// NewApp wires the session kept in store, the backend client and the views.
func NewApp(ctx context.Context, cfg *config.Config, store storage.Store, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	sess := session.New(store, log)

	hc, err := client.NewHTTPClient(cfg.APIBaseURL, sess.TokenSource(ctx), client.Options{
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	api := client.NewAPI(hc)

	reader := bufio.NewReader(in)
	console := NewConsole(reader, out)
	router := guard.NewRouter(sess, log)
	deps := views.Deps{Session: sess, Notify: console, Confirm: console, Nav: router, Log: log}
	f := form{in: reader, out: out}

	a := &App{
		log:     log.With("component", "cli"),
		session: sess,
		router:  router,
		console: console,
		in:      reader,
		out:     out,
		login:   views.NewLoginView(deps, api.Auth),
		signup:  views.NewSignupView(deps, api.Auth),
		home:    views.NewHomeView(deps),
	}
	a.screens = map[guard.Route]screen{
		guard.RouteHome:       &homeScreen{v: a.home},
		guard.RouteCategories: &categoryScreen{form: f, v: views.NewCategoryView(deps, api.Categories)},
		guard.RouteEntries:    &entryScreen{form: f, v: views.NewEntryView(deps, api.Entries, api.Goals)},
		guard.RouteGoals:      &goalScreen{form: f, v: views.NewGoalView(deps, api.Goals, api.Categories)},
		guard.RouteUsers:      &userScreen{form: f, v: views.NewUserView(deps, api.Users)},
		guard.RouteReport:     &reportScreen{v: views.NewReportView(deps, api.Reports)},
	}
	a.home.OnLogout(func() {
		for _, s := range a.screens {
			s.reset()
		}
	})
	return a, nil
}

// Run resumes a stored session, if any, and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophfinance (type 'help' for commands)")
	if a.session.HasToken(ctx) {
		if a.session.IsExpired(ctx) {
			a.console.Error(ctx, "Your session has expired, please log in again.")
		} else {
			_ = a.Open(ctx, guard.RouteHome)
		}
	}
	runREPL(ctx, a, a.status, a.in)
}

func (a *App) isLoggedIn(ctx context.Context) bool { return a.session.HasToken(ctx) }

// status is shown in the prompt: "user@screen".
func (a *App) status() string {
	ctx := context.Background()
	route := a.router.Current()
	if name, ok := a.session.Username(ctx); ok {
		return fmt.Sprintf("%s@%s", name, route)
	}
	return string(route)
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	if err := a.login.Submit(ctx, email, pw); err != nil {
		return err
	}
	return a.show(ctx)
}

func (a *App) Signup(ctx context.Context) error {
	a.router.Navigate(ctx, guard.RouteSignup)
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.in, "Repeat password", a.out)
	if err != nil {
		return err
	}
	if err := a.signup.Submit(ctx, email, pw, confirm); err != nil {
		return err
	}
	return a.show(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	return a.home.Logout(ctx)
}

// Open enters route through the guard and shows it. Landing on login
// instead means there was no session.
func (a *App) Open(ctx context.Context, route guard.Route) error {
	got, err := a.router.Go(ctx, route)
	if err != nil {
		return err
	}
	if got != route {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}
	return a.show(ctx)
}

// show loads and renders the current screen.
func (a *App) show(ctx context.Context) error {
	s, ok := a.screens[a.router.Current()]
	if !ok {
		return nil
	}
	err := s.load(ctx)
	s.render(ctx, a.out)
	return err
}

func (a *App) current() (screen, error) {
	s, ok := a.screens[a.router.Current()]
	if !ok {
		return nil, errNotSupported
	}
	return s, nil
}

func (a *App) Reload(ctx context.Context) error {
	if _, err := a.current(); err != nil {
		return err
	}
	return a.show(ctx)
}

func (a *App) Add(ctx context.Context) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.add(ctx); err != nil {
		return err
	}
	s.render(ctx, a.out)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.edit(ctx, id); err != nil {
		return err
	}
	s.render(ctx, a.out)
	return nil
}

func (a *App) Delete(ctx context.Context, ids []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if err := s.remove(ctx, ids); err != nil {
		return err
	}
	s.render(ctx, a.out)
	return nil
}

// report prints errors that the views did not already show.
func (a *App) report(ctx context.Context, err error) {
	if err != nil {
		a.log.Debug(ctx, "command failed", "route", a.router.Current(), "error", err)
	}
	var ve *views.ValidationError
	switch {
	case err == nil, errors.As(err, &ve):
	case errors.Is(err, io.EOF):
	case errors.Is(err, views.ErrLoginFailed), errors.Is(err, views.ErrSignupFailed):
	case errors.Is(err, client.ErrNoIdentity), errors.Is(err, client.ErrUnavailable),
		errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrBackend):
	default:
		a.console.Error(ctx, err.Error())
	}
}
