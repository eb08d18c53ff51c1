package views

import (
	"context"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
)

type HomeView struct {
	Deps
	onLogout []func()
}

func NewHomeView(d Deps) *HomeView {
	d.Log = d.Log.With("view", "home")
	return &HomeView{Deps: d}
}

// OnLogout registers fn to run after a successful logout, e.g. to drop
// cached lists.
func (v *HomeView) OnLogout(fn func()) { v.onLogout = append(v.onLogout, fn) }

// Greeting returns the display name, falling back to the token subject.
func (v *HomeView) Greeting(ctx context.Context) string {
	if name, ok := v.Session.Username(ctx); ok {
		return name
	}
	if id, ok := v.Session.Identity(ctx); ok {
		return id
	}
	return "guest"
}

// Logout clears the session and returns to the login screen.
func (v *HomeView) Logout(ctx context.Context) error {
	if err := v.Session.Clear(ctx); err != nil {
		v.Log.Error(ctx, "clearing session failed", "error", err)
		v.Notify.Error(ctx, "Could not sign out.")
		return err
	}
	for _, fn := range v.onLogout {
		fn()
	}
	v.Notify.Success(ctx, "Signed out.")
	v.Nav.Navigate(ctx, guard.RouteLogin)
	return nil
}
