// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hooks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/result"
)

// SortRows orders rows in place by the comma separated keys in spec. Keys are
// dot paths; "-" sorts descending and "!" compares strings case-sensitively.
// Both prefixes may be combined as "-!name".
func SortRows(rows []any, spec string) {
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {

		for _, field := range fields {
			field = strings.TrimSpace(field)
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}
			if field == "" {
				continue
			}

			oneValue, _ := result.Drill(rows[one], field)
			twoValue, _ := result.Drill(rows[two], field)

			oneNum, oneOk := toFloat64(oneValue)
			twoNum, twoOk := toFloat64(twoValue)

			if oneOk && twoOk {
				if oneNum != twoNum {
					if ascending {
						return oneNum < twoNum
					}
					return oneNum > twoNum
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			compareOneStr := valueToString(oneValue)
			compareTwoStr := valueToString(twoValue)
			if !caseSensitive {
				compareOneStr = strings.ToLower(compareOneStr)
				compareTwoStr = strings.ToLower(compareTwoStr)
			}

			if compareOneStr != compareTwoStr {
				if ascending {
					return compareOneStr < compareTwoStr
				}
				return compareOneStr > compareTwoStr
			}

		}
		return false
	})
}

// RegisterSort installs a TransformResult hook ordering list results by
// spec. An empty spec registers nothing and returns false.
func RegisterSort(bus *events.Bus, spec string) bool {
	if strings.TrimSpace(spec) == "" {
		return false
	}

	bus.Register(events.TransformResult, func(ev *events.Event) error {
		rows, ok := result.AsList(ev.Data[events.KeyResult])
		if !ok {
			return nil
		}
		// Sort a copy so typed slices handed in by callers stay untouched.
		sorted := append([]any(nil), rows...)
		SortRows(sorted, spec)
		log.Debugf("sort: ordered %d rows by %s", len(sorted), spec)
		ev.Data[events.KeyResult] = sorted
		return nil
	})
	return true
}

// valueToString renders a leaf for comparison. Missing values sort as "".
func valueToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
