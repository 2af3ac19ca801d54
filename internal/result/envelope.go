// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

// Transformer reshapes a result before table rendering. A compiled JMESPath
// expression and a plain Go function both satisfy it.
type Transformer interface {
	Transform(v any) (any, error)
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(v any) (any, error)

// Transform calls f(v).
func (f TransformFunc) Transform(v any) (any, error) {
	return f(v)
}

// Envelope is what a command hands to the output layer: the result tree plus
// the metadata renderers need.
//
// IsQueryActive means a --query filter already shaped Result, so the table
// renderer must neither apply TableTransformer nor sort columns.
type Envelope struct {
	Result           any
	TableTransformer Transformer
	IsQueryActive    bool
	ExitCode         int
	Err              error
}

// NewEnvelope wraps a bare result.
func NewEnvelope(v any) *Envelope {
	return &Envelope{Result: v}
}
