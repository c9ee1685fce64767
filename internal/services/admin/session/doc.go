// Package session owns the admin console's sign-in state.
//
// A Store persists the bearer token and the cached user profile on a KV
// medium (browser cookies, SQLite rows, or memory). A Verifier checks stored
// tokens locally. A Manager composes both with the login RPC and is the only
// writer of session state for one activation.
//
// Local verification has a staleness window: a token whose account was
// disabled or whose role was changed server-side stays valid here until its
// exp claim passes. The cached profile is used for display only; the backend
// authorizes every call with the bearer token.
package session
