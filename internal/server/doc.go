// Package server runs the HTTP transport and the background workers under
// one lifecycle: both start together and both are drained on SIGINT,
// SIGTERM or SIGQUIT.
package server
