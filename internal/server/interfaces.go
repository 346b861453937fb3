package server

// Server is the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer serves until a stop signal and then shuts down.
	RunServer()

	// Shutdown stops every transport gracefully.
	Shutdown()
}
