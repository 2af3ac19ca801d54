// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package result

import (
	"regexp"
	"strconv"
	"strings"
)

var drillSegment = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Drill navigates a result tree using a dot path supporting list indexes, for
// example "properties.ipConfigurations[0].name". A list reached without an
// index is unwrapped when it has exactly one element; "[*]" or a longer list
// yields the whole list. found is false when any segment is missing.
func Drill(v any, path string) (value any, found bool) {
	current := v

	for _, p := range strings.Split(path, ".") {
		matches := drillSegment.FindStringSubmatch(p)
		if len(matches) == 0 {
			return nil, false
		}

		key := matches[1]

		index := -1
		if matches[3] != "" && matches[3] != "*" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, false
			}
			index = i
		}

		val, ok := lookup(current, key)
		if !ok {
			return nil, false
		}

		if list, isList := AsList(val); isList {
			switch {
			case index == -1:
				if len(list) == 1 && matches[3] != "*" {
					val = list[0]
				}
				// Otherwise keep the whole list.
			case index < len(list):
				val = list[index]
			default:
				return nil, false
			}
		}

		current = val
	}

	return current, true
}

// lookup reads key from a map node of either kind.
func lookup(v any, key string) (any, bool) {
	switch m := v.(type) {
	case *OrderedMap:
		if m == nil {
			return nil, false
		}
		return m.Get(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}
