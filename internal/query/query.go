// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package query compiles and evaluates JMESPath expressions over result trees.
//
// The JMESPath engine works on plain Go maps, which have no order. To keep
// output stable and readable, maps in a search result are rebuilt as
// ordered maps: keys of a multi-select hash ({Name:name, Kind:type}) keep the
// order written in the expression, maps copied from the input keep their
// input order, and anything else is sorted.
package query

import (
	"errors"
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/azpipe/azpipe/internal/result"
)

// Error reports an expression that failed to compile.
type Error struct {
	Expression string
	Offset     int
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid JMESPath query %q: %v", e.Expression, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Expression is a compiled JMESPath expression. Compile once, search many
// times.
type Expression struct {
	source   string
	compiled *jmespath.JMESPath
	orders   [][]string
}

// Compile parses expr. Syntax errors are returned as *Error.
func Compile(expr string) (*Expression, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		qe := &Error{Expression: expr, Offset: -1, Err: err}
		var se jmespath.SyntaxError
		if errors.As(err, &se) {
			qe.Offset = se.Offset
		}
		return nil, qe
	}
	return &Expression{
		source:   expr,
		compiled: compiled,
		orders:   hashKeyOrders(expr),
	}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// expressions fixed at build time, such as table transformers.
func MustCompile(expr string) *Expression {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the source text.
func (e *Expression) String() string {
	return e.source
}

// Search evaluates the expression against v.
func (e *Expression) Search(v any) (any, error) {
	out, err := e.compiled.Search(searchable(v))
	if err != nil {
		return nil, err
	}

	hints := newOrderHints()
	for _, keys := range e.orders {
		hints.add(keys)
	}
	hints.collect(v)

	return hints.rebuild(out), nil
}

// Transform lets an Expression serve as a table transformer.
func (e *Expression) Transform(v any) (any, error) {
	return e.Search(v)
}

var _ result.Transformer = (*Expression)(nil)

// searchable converts v to the plain shapes the JMESPath engine expects,
// with every number as float64 so comparisons and numeric functions work.
func searchable(v any) any {
	return floatNumbers(result.ToPlain(v))
}

// floatNumbers rewrites numbers in place; v must already be plain.
func floatNumbers(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = floatNumbers(child)
		}
		return n
	case []any:
		for i, child := range n {
			n[i] = floatNumbers(child)
		}
		return n
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return n
	}
}
