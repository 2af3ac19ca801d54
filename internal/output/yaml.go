// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/result"
)

// YAMLRenderer emits the result as block style YAML.
var YAMLRenderer = RenderFunc(renderYAML)

func renderYAML(env *result.Envelope) (string, error) {
	v := env.Result

	// yaml.v3 has no notion of OrderedMap, so such trees are flattened through
	// JSON first. Key order is lost but the dump always succeeds.
	if result.ContainsOrdered(v) {
		log.Tracef("yaml: ordered maps present, using json round trip")
		plain, err := result.JSONRoundTrip(v)
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		v = plain
	} else {
		v = result.ToPlain(v)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("render yaml: %w", err)
	}

	return buf.String(), nil
}
