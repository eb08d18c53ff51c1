// Package session owns the bearer token of the signed-in user.
//
// The token is kept in a storage.Store under common.TokenStorageKey and is
// decoded on demand; nothing is cached in memory, so a second process
// writing the same store is observed on the next call. A token whose
// payload cannot be decoded is reported as "no session", never as an error.
package session
