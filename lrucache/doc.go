/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package lrucache provides an in-memory cache with LRU eviction, optional per-entry TTL,
// Prometheus metrics, and a loader helper that suppresses duplicate concurrent loads of the same key.
//
// Entry eviction is a deliberate capacity/time policy: an entry disappears either because
// the cache is full and it was the least recently used one, or because its TTL has passed.
// An expired entry found on access is treated exactly as a missing one.
package lrucache
