package server

// Server is the lifecycle of the recovery registry's transport.
//
// RunServer blocks until SIGTERM, SIGINT or SIGQUIT arrives and returns once
// in-flight requests have drained. Shutdown may be called from another
// goroutine to stop it earlier.
type Server interface {
	RunServer()
	Shutdown()
}
