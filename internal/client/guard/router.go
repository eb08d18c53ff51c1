package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

type Route string

const (
	RouteLogin      Route = "login"
	RouteSignup     Route = "signup"
	RouteHome       Route = "home"
	RouteCategories Route = "categories"
	RouteEntries    Route = "entries"
	RouteGoals      Route = "goals"
	RouteUsers      Route = "users"
	RouteReport     Route = "report"
)

var ErrUnknownRoute = errors.New("unknown route")

var routes = map[Route]bool{
	RouteLogin:      false,
	RouteSignup:     false,
	RouteHome:       true,
	RouteCategories: true,
	RouteEntries:    true,
	RouteGoals:      true,
	RouteUsers:      true,
	RouteReport:     true,
}

// Protected reports whether entering r requires a session.
func (r Route) Protected() bool { return routes[r] }

// ParseRoute maps a user-typed name to a Route.
func ParseRoute(s string) (Route, error) {
	r := Route(s)
	if _, ok := routes[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, s)
	}
	return r, nil
}

// Routes lists every known route in menu order.
func Routes() []Route {
	return []Route{RouteLogin, RouteSignup, RouteHome, RouteCategories, RouteEntries, RouteGoals, RouteUsers, RouteReport}
}

// Router tracks the current route and guards protected ones.
type Router struct {
	mu      sync.Mutex
	current Route
	guard   *Guard
}

// NewRouter starts on the login route.
func NewRouter(tokens TokenChecker, log logging.Logger) *Router {
	r := &Router{current: RouteLogin}
	r.guard = New(tokens, r, log)
	return r
}

// Navigate implements Navigator.
func (r *Router) Navigate(_ context.Context, route Route) {
	r.mu.Lock()
	r.current = route
	r.mu.Unlock()
}

// Go enters route, running the guard first for protected routes. It
// returns the route the user ends up on.
func (r *Router) Go(ctx context.Context, route Route) (Route, error) {
	if _, ok := routes[route]; !ok {
		return r.Current(), fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	if route.Protected() && !r.guard.CanEnter(ctx, route) {
		return r.Current(), nil
	}
	r.Navigate(ctx, route)
	return route, nil
}

func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
