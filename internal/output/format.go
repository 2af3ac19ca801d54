// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"strings"
)

// Format is an output format selectable with --output.
type Format int

const (
	JSON Format = iota
	JSONC
	YAML
	YAMLC
	Table
	TSV
	List
	None
)

var formatNames = [...]string{
	JSON:  "json",
	JSONC: "jsonc",
	YAML:  "yaml",
	YAMLC: "yamlc",
	Table: "table",
	TSV:   "tsv",
	List:  "list",
	None:  "none",
}

// ErrUnknownFormat is returned by ParseFormat for unrecognized names.
var ErrUnknownFormat = errors.New("unknown output format")

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat resolves a --output value. Matching ignores case and "text" is
// accepted as an alias for list.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "text" {
		return List, nil
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownFormat, s, strings.Join(Names(), ", "))
}

// Names lists the accepted --output values.
func Names() []string {
	names := make([]string, 0, len(formatNames)+1)
	for _, n := range formatNames {
		names = append(names, n)
		if n == "list" {
			names = append(names, "text")
		}
	}
	return names
}

// Colored reports whether f is a highlighted variant.
func (f Format) Colored() bool {
	return f == JSONC || f == YAMLC
}

// Plain returns the non-highlighted counterpart of f.
func (f Format) Plain() Format {
	switch f {
	case JSONC:
		return JSON
	case YAMLC:
		return YAML
	}
	return f
}
