// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/azpipe/azpipe/internal/result"
)

// orderHints maps a key set (see signature) to the preferred key order. The
// first order registered for a key set wins.
type orderHints struct {
	bySig map[string][]string
}

func newOrderHints() *orderHints {
	return &orderHints{bySig: make(map[string][]string)}
}

func signature(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func (h *orderHints) add(keys []string) {
	sig := signature(keys)
	if _, ok := h.bySig[sig]; !ok {
		h.bySig[sig] = keys
	}
}

// collect records the key order of every ordered map in v.
func (h *orderHints) collect(v any) {
	switch n := v.(type) {
	case *result.OrderedMap:
		if n == nil {
			return
		}
		h.add(n.Keys())
		for _, child := range n.Entries() {
			h.collect(child)
		}
	case map[string]any:
		for _, child := range n {
			h.collect(child)
		}
	default:
		if l, ok := result.AsList(v); ok {
			for _, child := range l {
				h.collect(child)
			}
		}
	}
}

// rebuild turns plain maps in v into ordered maps.
func (h *orderHints) rebuild(v any) any {
	switch n := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		if order, ok := h.bySig[signature(keys)]; ok {
			keys = order
		} else {
			sort.Strings(keys)
		}
		m := &result.OrderedMap{}
		for _, k := range keys {
			m.Set(k, h.rebuild(n[k]))
		}
		return m
	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			out[i] = h.rebuild(child)
		}
		return out
	case float64:
		return integral(n)
	}
	return v
}

// integral returns f as an int64 when it holds a whole number in int64
// range. The engine only knows float64, so integers are restored here.
func integral(f float64) any {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return f
	}
	return int64(f)
}

type tokenKind int

const (
	tokPunct tokenKind = iota
	tokIdent
	tokLiteral
)

type token struct {
	kind tokenKind
	text string
}

// hashKeyOrders returns the keys of every multi-select hash in expr, in
// written order, innermost hashes first.
func hashKeyOrders(expr string) [][]string {
	toks := lex(expr)

	type frame struct {
		keys []string
		nest int
	}
	var (
		stack  []*frame
		orders [][]string
	)
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for i, tok := range toks {
		switch tok.kind {
		case tokPunct:
			switch tok.text {
			case "{":
				stack = append(stack, &frame{})
			case "}":
				if f := top(); f != nil {
					stack = stack[:len(stack)-1]
					if len(f.keys) > 0 {
						orders = append(orders, f.keys)
					}
				}
			case "[", "(":
				if f := top(); f != nil {
					f.nest++
				}
			case "]", ")":
				if f := top(); f != nil && f.nest > 0 {
					f.nest--
				}
			}
		case tokIdent:
			f := top()
			if f == nil || f.nest > 0 || i == 0 || i+1 >= len(toks) {
				continue
			}
			prev, next := toks[i-1], toks[i+1]
			if prev.kind == tokPunct && (prev.text == "{" || prev.text == ",") &&
				next.kind == tokPunct && next.text == ":" {
				f.keys = append(f.keys, tok.text)
			}
		}
	}
	return orders
}

// lex splits a JMESPath expression into the few token classes hashKeyOrders
// cares about. Literals are skipped over whole so their content is never
// mistaken for structure.
func lex(expr string) []token {
	var toks []token
	runes := []rune(expr)

	// until returns the index of the closing quote, honoring backslash escapes.
	until := func(start int, quote rune) int {
		for j := start; j < len(runes); j++ {
			if runes[j] == '\\' {
				j++
				continue
			}
			if runes[j] == quote {
				return j
			}
		}
		return len(runes)
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
		case r == '"':
			end := until(i+1, '"')
			raw := string(runes[i:min(end+1, len(runes))])
			name, err := strconv.Unquote(raw)
			if err != nil {
				name = strings.Trim(raw, `"`)
			}
			toks = append(toks, token{kind: tokIdent, text: name})
			i = end
		case r == '\'' || r == '`':
			end := until(i+1, r)
			toks = append(toks, token{kind: tokLiteral, text: string(runes[i:min(end+1, len(runes))])})
			i = end
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(runes) && (runes[j] == '_' || unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[i:j])})
			i = j - 1
		case r == '-' || unicode.IsDigit(r):
			j := i + 1
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			toks = append(toks, token{kind: tokLiteral, text: string(runes[i:j])})
			i = j - 1
		default:
			toks = append(toks, token{kind: tokPunct, text: string(r)})
		}
	}
	return toks
}
