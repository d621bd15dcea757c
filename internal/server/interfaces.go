package server

// Server is the lifecycle contract the vault's HTTP listener exposes to
// main: [RunServer] blocks until a stop signal arrives and the listener
// has drained in-flight document streams, [Shutdown] forces the same
// teardown programmatically.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
