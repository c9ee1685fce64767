// Package admin serves the Goal Institute admin console.
//
// Every request activates a session Manager over the configured medium,
// the route guard decides between rendering, redirecting to sign-in, or a
// loading placeholder, and handlers call the backend API with the session's
// bearer token. The backend authorizes every call; roles shown here only
// shape navigation.
package admin
