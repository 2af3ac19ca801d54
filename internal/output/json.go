// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/azpipe/azpipe/internal/result"
)

// JSONRenderer emits the result as indented JSON. Map keys are always sorted
// and non-ASCII text is written as is.
var JSONRenderer = RenderFunc(renderJSON)

func renderJSON(env *result.Envelope) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	// Ordered maps go through their entries into plain maps, which
	// encoding/json writes with sorted keys.
	if err := enc.Encode(result.ToPlain(env.Result)); err != nil {
		return "", fmt.Errorf("render json: %w", err)
	}

	return buf.String(), nil
}
