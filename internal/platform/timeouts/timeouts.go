// Package timeouts defines shared timeout constants for the admin console.
package timeouts

import "time"

// BackendRequest caps a single REST call from the admin console to the backend.
const BackendRequest = 10 * time.Second

// Upload caps a single asset upload to the CDN.
const Upload = 30 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
