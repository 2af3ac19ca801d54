// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package result holds the in-memory result tree that commands produce and
// renderers consume, and the Envelope that carries it to the output layer.
//
// A result tree node is one of:
//
//   - nil, bool, string, int64, float64 or []byte scalars
//   - []any lists
//   - *OrderedMap, a map that remembers insertion order
//   - map[string]any, a map with no meaningful order
//
// Renderers rely on the distinction between the two map kinds, so decoders in
// this package always produce *OrderedMap.
package result
