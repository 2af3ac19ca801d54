// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Field is one key/value pair of a map node.
type Field struct {
	Key   string
	Value any
}

// Fields returns the entries of a map node: insertion order for *OrderedMap,
// sorted key order for map[string]any. ok is false for non-map nodes.
func Fields(v any) (fields []Field, ok bool) {
	switch m := v.(type) {
	case *OrderedMap:
		if m == nil {
			return nil, false
		}
		fields = make([]Field, 0, m.Len())
		for k, val := range m.Entries() {
			fields = append(fields, Field{Key: k, Value: val})
		}
		return fields, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields = make([]Field, 0, len(m))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: m[k]})
		}
		return fields, true
	}
	return nil, false
}

// IsMap reports whether v is a map node of either kind.
func IsMap(v any) bool {
	switch m := v.(type) {
	case *OrderedMap:
		return m != nil
	case map[string]any:
		return true
	}
	return false
}

// AsList returns v as a list node. Typed string and map slices produced by
// Go callers are accepted as well.
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	case []*OrderedMap:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// IsContainer reports whether v is a list or map node.
func IsContainer(v any) bool {
	if IsMap(v) {
		return true
	}
	_, ok := AsList(v)
	return ok
}

// ContainsOrdered reports whether an *OrderedMap appears anywhere in v.
func ContainsOrdered(v any) bool {
	switch n := v.(type) {
	case *OrderedMap:
		return true
	case map[string]any:
		for _, child := range n {
			if ContainsOrdered(child) {
				return true
			}
		}
	default:
		if l, ok := AsList(v); ok {
			for _, child := range l {
				if ContainsOrdered(child) {
					return true
				}
			}
		}
	}
	return false
}

// ToPlain converts v into values encoding/json and yaml understand natively:
// ordered maps become map[string]any through their declared entries and
// byte strings are decoded as UTF-8 text.
func ToPlain(v any) any {
	switch n := v.(type) {
	case *OrderedMap:
		if n == nil {
			return nil
		}
		out := make(map[string]any, n.Len())
		for k, val := range n.Entries() {
			out[k] = ToPlain(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[k] = ToPlain(val)
		}
		return out
	case []byte:
		return strings.ToValidUTF8(string(n), "�")
	}
	if l, ok := AsList(v); ok {
		out := make([]any, len(l))
		for i, child := range l {
			out[i] = ToPlain(child)
		}
		return out
	}
	return v
}

// JSONRoundTrip serializes v to JSON and parses it back into plain maps and
// lists. Map ordering is lost. Integral numbers come back as int64, all
// others as float64.
func JSONRoundTrip(v any) (any, error) {
	raw, err := json.Marshal(ToPlain(v))
	if err != nil {
		return nil, fmt.Errorf("json round trip: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("json round trip: %w", err)
	}
	return fromNumbers(out), nil
}

// fromNumbers replaces json.Number values in a decoded tree, in place.
func fromNumbers(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = fromNumbers(child)
		}
	case []any:
		for i, child := range n {
			n[i] = fromNumbers(child)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}
