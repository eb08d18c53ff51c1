// Package devbackend is an in-memory implementation of the finance REST
// backend. It exists to run the CLI locally and to test the HTTP client
// against real routes; nothing is persisted.
//
// Auth endpoints (/auth/login, /auth/register) issue HS256 tokens whose
// subject is the user's email. Every /api route requires such a token, and
// owner-scoped routes answer 403 when the path username is not the token
// subject.
package devbackend
