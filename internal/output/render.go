// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/azpipe/azpipe/internal/result"
)

// Renderer turns an envelope into the text written to the stream.
type Renderer interface {
	Render(env *result.Envelope) (string, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(env *result.Envelope) (string, error)

// Render calls f(env).
func (f RenderFunc) Render(env *result.Envelope) (string, error) {
	return f(env)
}

// NoneRenderer renders nothing regardless of the envelope.
var NoneRenderer = RenderFunc(func(*result.Envelope) (string, error) {
	return "", nil
})
