// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strconv"
	"strings"

	"github.com/azpipe/azpipe/internal/result"
)

// TSVRenderer emits one tab separated line per top-level item with no
// header. Ordered maps keep insertion order and plain maps are sorted by key
// so that columns line up from one item to the next.
var TSVRenderer = RenderFunc(renderTSV)

func renderTSV(env *result.Envelope) (string, error) {
	items, ok := result.AsList(env.Result)
	if !ok {
		items = []any{env.Result}
	}

	var sb strings.Builder
	for _, item := range items {
		writeTSVRow(&sb, item)
	}
	return sb.String(), nil
}

func writeTSVRow(sb *strings.Builder, item any) {
	var values []any
	if fields, ok := result.Fields(item); ok {
		values = make([]any, len(fields))
		for i, f := range fields {
			values[i] = f.Value
		}
	} else if list, ok := result.AsList(item); ok {
		values = list
	} else {
		sb.WriteString(tsvCell(item))
		sb.WriteByte('\n')
		return
	}

	for i, v := range values {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(tsvCell(v))
	}
	sb.WriteByte('\n')
}

// tsvCell renders one value of a row. Nested lists collapse to their length
// and nested maps to an empty placeholder, keeping the column count stable.
func tsvCell(v any) string {
	if result.IsMap(v) {
		return ""
	}
	if list, ok := result.AsList(v); ok {
		return strconv.Itoa(len(list))
	}
	return scalarString(v, "None")
}
