// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by ParseJSON for malformed documents.
var ErrInvalidJSON = errors.New("invalid JSON document")

// ParseJSON decodes a JSON document into a result tree. Objects become
// *OrderedMap in document order, integral numbers become int64 and all other
// numbers float64.
func ParseJSON(raw []byte) (any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return FromGJSON(gjson.ParseBytes(raw)), nil
}

// FromGJSON converts an already parsed gjson value.
func FromGJSON(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		return number(r)
	}

	if r.IsArray() {
		list := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			list = append(list, FromGJSON(value))
			return true
		})
		return list
	}

	if r.IsObject() {
		m := &OrderedMap{}
		r.ForEach(func(key, value gjson.Result) bool {
			m.Set(key.Str, FromGJSON(value))
			return true
		})
		return m
	}

	return nil
}

// number keeps integers exact when the literal has no fraction or exponent.
func number(r gjson.Result) any {
	if r.Raw != "" && !strings.ContainsAny(r.Raw, ".eE") {
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
	}
	return r.Num
}
