// Package views holds the screen controllers driven by the CLI.
//
// A controller owns the state of one screen: the last fetched list (a
// state.Slot), at most one edit draft, and the form checks that run before
// any request. Results are reported through a Notifier; destructive actions
// go through a Confirmer first. Every successful mutation is followed by a
// full reload of the list, and a failed one leaves the list as it was.
package views
