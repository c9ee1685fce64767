// Package i18n resolves the operator's language and formats numbers for the
// admin UI.
package i18n
