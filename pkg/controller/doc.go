// Package controller holds the net/http middleware and debug handlers the
// navigation API server is assembled from.
//
// WithCORS answers preflight and adds permissive CORS headers so the
// bookmark frontend can call the API from any origin. WithLogger attaches a
// request-scoped logger plus request ID to the context and writes one access
// log line per request; its response recorder forwards Flush so streamed
// chat responses are not buffered. PprofMux exposes the net/http/pprof
// handlers for mounting under a debug path.
package controller
