// Package storage defines persistence contracts for server-side session media.
//
// Handlers depend on these interfaces so the cookie, memory and SQLite media
// stay interchangeable.
package storage
