// Package storage persists the account session between runs.
//
// The session lives in a single-row SQLite database, by convention at
// <dir>/<name>.session. A fresh store reports the client library's
// ErrNotFound, which triggers the interactive sign-in flow.
package storage
