// Package models holds the records exchanged with the finance backend, the
// drafts used to create them and the patches used to update them.
//
// JSON field names follow the backend (Portuguese) so values round-trip
// without tag gymnastics; Go names are English.
package models
