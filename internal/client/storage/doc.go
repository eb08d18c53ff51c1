// Package storage persists small key/value pairs for the CLI, most
// importantly the session token.
//
// Three backends implement Store: SQLite (the default, a single file next
// to the binary), Redis (useful when several shells share a session) and an
// in-process map for tests and throwaway sessions.
package storage
