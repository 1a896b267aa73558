// Package client contains the client-side building blocks for gophboard.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, which speaks the JSON envelope protocol of the board API,
//     attaches the bearer credential and refreshes it shortly before it
//     expires.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session store and applies the embedded goose migrations.
//
// # Error Handling
//
// Error responses are decoded back into the sentinels of package common, so
// callers can match them with errors.Is. Transport failures wrap
// ErrUnavailable; a missing local session is ErrLocalDataNotAvailable.
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation.
package client
