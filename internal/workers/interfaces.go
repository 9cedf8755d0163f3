// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the worker keeps going
// until ctx is done. Wait blocks until it has fully stopped.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() {
//	        defer close(w.done)
//	        <-ctx.Done()
//	    }()
//	}
//
//	func (w *MyWorker) Wait() { <-w.done }
type Worker interface {
	Run(ctx context.Context)
	Wait()
}
