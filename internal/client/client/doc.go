// Package client talks to the finance REST backend.
//
// # Overview
//
// HTTPClient owns two http.Clients: an anonymous one for the /auth
// endpoints and one whose oauth2.Transport attaches the session token to
// every /api request. On top of it:
//  1. Resource is the generic CRUD client; Categories, Entries, Goals and
//     Users are its instantiations.
//  2. AuthClient performs login and registration.
//  3. Reports serves the aggregate endpoints.
//
// # Error Handling
//
// Failures are mapped to sentinels callers match with errors.Is:
// ErrUnavailable (the backend could not be reached), ErrUnauthorized (no
// token, or 401/403), ErrNoIdentity (no signed-in subject, no request
// made) and ErrBackend (any other non-2xx; errors.As yields *BackendError).
// Nothing is retried.
package client
