// Package config loads, merges and validates go-fleet-keeper configuration.
//
// Sources are applied in the following order, later non-zero fields
// overriding earlier ones:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the command-line client.
package config
