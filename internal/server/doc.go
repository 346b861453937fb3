// Package server runs the HTTP and gRPC transports of go-fleet-keeper and
// stops them on SIGTERM, SIGINT or SIGQUIT.
package server
