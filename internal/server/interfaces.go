package server

import "context"

// Server defines the lifecycle of the process.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives and
	// everything has drained.
	RunServer()

	// Shutdown gracefully stops the transport.
	Shutdown()
}

// Background is the set of workers started alongside the transport.
type Background interface {
	Run(ctx context.Context)
	Wait()
}
