/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package countries provides a client for the REST Countries API
// with an in-memory LRU/TTL cache for currency lookups.
//
// Every operation comes in two flavors: a plain one that blocks for the duration
// of the network round trip, and a Context one that can be canceled or given a deadline.
// The plain flavor is a thin wrapper over the Context one with context.Background().
package countries
