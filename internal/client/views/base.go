package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfinance/internal/client/client"
	"github.com/dmitrijs2005/gophfinance/internal/client/state"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	Session Session
	Notify  Notifier
	Confirm Confirmer
	Nav     Navigator
	Log     logging.Logger
}

// listView is the part common to the resource screens.
type listView[R any] struct {
	Deps
	what string
	list *state.Slot[R]
}

func newListView[R any](d Deps, what string) listView[R] {
	d.Log = d.Log.With("view", what)
	return listView[R]{Deps: d, what: what, list: &state.Slot[R]{}}
}

// Items is the last successfully loaded list.
func (v *listView[R]) Items() []R { return v.list.Items() }

func (v *listView[R]) Status() state.Status { return v.list.Status() }

// identity fails with client.ErrNoIdentity, reported and logged, when no
// one is signed in.
func (v *listView[R]) identity(ctx context.Context) (string, error) {
	id, ok := v.Session.Identity(ctx)
	if !ok {
		v.Log.Warn(ctx, "no identity, refusing request")
		v.Notify.Error(ctx, "You are not signed in.")
		return "", client.ErrNoIdentity
	}
	return id, nil
}

func (v *listView[R]) reload(ctx context.Context, fetch func(ctx context.Context, identity string) ([]R, error)) error {
	id, err := v.identity(ctx)
	if err != nil {
		return err
	}
	return v.reloadWith(ctx, func(ctx context.Context) ([]R, error) { return fetch(ctx, id) })
}

func (v *listView[R]) reloadWith(ctx context.Context, fetch func(ctx context.Context) ([]R, error)) error {
	_, err := v.list.Reload(ctx, fetch)
	if err != nil {
		v.fail(ctx, "load "+v.what, err)
		return err
	}
	return nil
}

// fail logs err and shows a one-line message for it.
func (v *listView[R]) fail(ctx context.Context, action string, err error) {
	v.Log.Error(ctx, action+" failed", "error", err)
	v.Notify.Error(ctx, describe(action, err))
}

// mutate runs op and, when it succeeds, reloads with the given loader.
// Without a signed-in identity op is never run.
func (v *listView[R]) mutate(ctx context.Context, action, done string, op func(ctx context.Context) error, load func(ctx context.Context) error) error {
	if _, err := v.identity(ctx); err != nil {
		return err
	}
	if err := op(ctx); err != nil {
		v.fail(ctx, action, err)
		return err
	}
	v.Notify.Success(ctx, done)
	return load(ctx)
}

// confirmed asks before a destructive action; a decline is logged only.
// Nobody is asked when no one is signed in; the error is returned instead.
func (v *listView[R]) confirmed(ctx context.Context, prompt string) (bool, error) {
	if _, err := v.identity(ctx); err != nil {
		return false, err
	}
	if v.Confirm.Confirm(ctx, prompt) {
		return true, nil
	}
	v.Log.Debug(ctx, "action declined", "prompt", prompt)
	return false, nil
}

func describe(action string, err error) string {
	var ve *ValidationError
	var be *client.BackendError
	switch {
	case errors.As(err, &ve):
		return fmt.Sprintf("Could not %s: %s %s.", action, ve.Field, ve.Message)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Sprintf("Could not %s: the server is unreachable.", action)
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Sprintf("Could not %s: your session is not valid, please sign in again.", action)
	case errors.Is(err, client.ErrNoIdentity):
		return fmt.Sprintf("Could not %s: you are not signed in.", action)
	case errors.As(err, &be):
		if be.Message != "" {
			return fmt.Sprintf("Could not %s: %s.", action, be.Message)
		}
		return fmt.Sprintf("Could not %s (status %d).", action, be.StatusCode)
	default:
		return fmt.Sprintf("Could not %s.", action)
	}
}

// Reset drops the loaded list.
func (v *listView[R]) Reset() { v.list.Reset() }
