// Package guard decides whether a protected screen may be entered and keeps
// track of the current screen.
package guard

import (
	"context"

	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

// TokenChecker reports whether a session token is stored.
type TokenChecker interface {
	HasToken(ctx context.Context) bool
}

// Navigator moves the user to another route without running the guard.
type Navigator interface {
	Navigate(ctx context.Context, route Route)
}

// Guard admits the user when a token is stored. Expiry is deliberately not
// checked here; an expired token is rejected by the backend instead.
type Guard struct {
	tokens TokenChecker
	nav    Navigator
	log    logging.Logger
}

func New(tokens TokenChecker, nav Navigator, log logging.Logger) *Guard {
	return &Guard{tokens: tokens, nav: nav, log: log.With("component", "guard")}
}

// CanEnter returns true when a token is present. Otherwise it redirects to
// the login route and returns false.
func (g *Guard) CanEnter(ctx context.Context, route Route) bool {
	if g.tokens.HasToken(ctx) {
		return true
	}
	g.log.Debug(ctx, "no session, redirecting", "route", route)
	g.nav.Navigate(ctx, RouteLogin)
	return false
}
