// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the fleet-keeper command-line client.
//
// Each invocation runs one command against the server. The session token
// printed by login and register can be handed to later invocations through
// the FLEET_SESSION environment variable.
package client
