// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package namespace models the resolved arguments of one command invocation
// and expands multi-valued arguments into one namespace per invocation.
package namespace

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Value is a namespace field. It is one of Scalar, Sequence or IterateValue.
type Value interface {
	isValue()
}

// Scalar is a single opaque argument value.
type Scalar struct {
	V any
}

// Sequence is an ordinary list-valued argument, passed to the command as a
// whole.
type Sequence []any

// IterateValue marks a field whose command runs once per element. Several
// IterateValue fields in one namespace are paired positionally.
type IterateValue []any

func (Scalar) isValue()       {}
func (Sequence) isValue()     {}
func (IterateValue) isValue() {}

// Namespace is the resolved argument set of one command invocation.
type Namespace map[string]Value

// Get returns the plain value of a field: the scalar itself, or the elements
// of a Sequence or IterateValue. ok is false for a missing field.
func (ns Namespace) Get(name string) (v any, ok bool) {
	switch val := ns[name].(type) {
	case Scalar:
		return val.V, true
	case Sequence:
		return []any(val), true
	case IterateValue:
		return []any(val), true
	}
	return nil, false
}

// String returns the scalar field name as a string, or "" when the field is
// missing, nil or not a scalar.
func (ns Namespace) String(name string) string {
	s, ok := ns[name].(Scalar)
	if !ok || s.V == nil {
		return ""
	}
	if str, ok := s.V.(string); ok {
		return str
	}
	return fmt.Sprint(s.V)
}

// Clone returns an independent copy. Sequence and IterateValue backing arrays
// are copied too.
func (ns Namespace) Clone() Namespace {
	c := make(Namespace, len(ns))
	for k, v := range ns {
		switch val := v.(type) {
		case Sequence:
			c[k] = slices.Clone(val)
		case IterateValue:
			c[k] = slices.Clone(val)
		default:
			c[k] = v
		}
	}
	return c
}

// Describe renders the named fields as "k=v,k=v" in the given order. It is
// used to label per-namespace failures.
func (ns Namespace) Describe(keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := ns.Get(k)
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

// IterateKeys returns the names of the IterateValue fields, sorted.
func IterateKeys(ns Namespace) []string {
	var keys []string
	for k, v := range ns {
		if _, ok := v.(IterateValue); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Explode yields one namespace per invocation. Without IterateValue fields
// the input itself is yielded once. Otherwise the IterateValue fields are
// zipped, not multiplied: {a: [x y], b: [p q]} yields {a:x b:p} and
// {a:y b:q}. The zip stops at the shortest IterateValue, silently dropping
// the tail of longer ones. Each yielded namespace is an independent clone and
// the input is never modified.
func Explode(ns Namespace) iter.Seq[Namespace] {
	return func(yield func(Namespace) bool) {
		keys := IterateKeys(ns)
		if len(keys) == 0 {
			yield(ns)
			return
		}

		base := ns.Clone()
		n := -1
		columns := make([]IterateValue, len(keys))
		for i, k := range keys {
			columns[i] = base[k].(IterateValue)
			delete(base, k)
			if n == -1 || len(columns[i]) < n {
				n = len(columns[i])
			}
		}

		for row := 0; row < n; row++ {
			expanded := base.Clone()
			for i, k := range keys {
				expanded[k] = Scalar{V: columns[i][row]}
			}
			if !yield(expanded) {
				return
			}
		}
	}
}
