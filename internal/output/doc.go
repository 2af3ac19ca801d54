// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders a result envelope in the format selected with
// --output and writes it to a stream.
//
// Formats:
//
//   - json, jsonc: indented JSON with sorted keys; jsonc is highlighted
//   - yaml, yamlc: block style YAML; yamlc is highlighted
//   - table: aligned columns of the flat fields of each item
//   - tsv: tab separated values, one line per item, no header
//   - list (alias text): indented "Key : value" dump
//   - none: nothing
//
// The color variants fall back to their plain counterparts when the
// destination is not a terminal or core.no_color is set.
package output
