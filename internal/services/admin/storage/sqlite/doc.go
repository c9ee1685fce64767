// Package sqlite provides the SQLite-backed session medium.
//
// Rows are keyed by an opaque browser id; the browser only ever holds that id.
package sqlite
