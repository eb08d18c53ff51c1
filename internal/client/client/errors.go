package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophfinance/internal/client/session"
	"github.com/dmitrijs2005/gophfinance/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
	ErrNoIdentity   = errors.New("no signed-in identity")
	ErrBackend      = errors.New("backend error")
)

// BackendError is a non-2xx answer other than 401/403.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend error: %d: %s", e.StatusCode, e.Message)
}

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.StatusCode == http.StatusNotFound
}

// mapError translates a transport failure from http.Client.Do.
func mapError(err error) error {
	switch {
	case errors.Is(err, session.ErrNoToken):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// statusError translates a non-2xx response; msg is the extracted body text.
func statusError(code int, msg string) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = http.StatusText(code)
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	default:
		return &BackendError{StatusCode: code, Message: msg}
	}
}
