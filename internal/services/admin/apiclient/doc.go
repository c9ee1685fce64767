// Package apiclient calls the content backend's REST API.
//
// Every resource call attaches the request's bearer token and folds the
// outcome into a Result: non-2xx statuses, network failures and undecodable
// bodies all come back as Result{Success: false, Message: ...}.
package apiclient
