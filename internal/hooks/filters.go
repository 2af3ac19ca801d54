// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hooks

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/result"
)

// filterRegex parses a filter expression into key, operator (with optional
// negation) and target. Examples: "name" (key only), "name=value",
// "name=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Value   string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (missing key or operand) are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("AZPIPE_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}
		if operand == "" {
			log.Errorf("invalid filter: missing operator in %s", filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// FilterRows keeps the rows that match every filter.
func FilterRows(rows []any, filters []Filter) []any {
	if len(filters) == 0 {
		return rows
	}

	kept := make([]any, 0, len(rows))
	for _, row := range rows {
		if applyFilters(row, filters) {
			kept = append(kept, row)
		}
	}
	return kept
}

// RegisterFilter installs a TransformResult hook applying spec to list
// results. An empty spec registers nothing and returns false.
func RegisterFilter(bus *events.Bus, spec string) bool {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return false
	}

	bus.Register(events.TransformResult, func(ev *events.Event) error {
		rows, ok := result.AsList(ev.Data[events.KeyResult])
		if !ok {
			return nil
		}
		kept := FilterRows(rows, filters)
		log.Debugf("filter: kept %d of %d rows", len(kept), len(rows))
		ev.Data[events.KeyResult] = kept
		return nil
	})
	return true
}

// applyFilters returns true if the row matches all of the filters.
func applyFilters(row any, filters []Filter) bool {
	for _, filter := range filters {
		value, found := result.Drill(row, filter.Key)
		if !found || value == nil {
			// A missing value only satisfies a negated filter.
			if filter.Negate {
				continue
			}
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		default:
			if num, isNum := toFloat64(value); isNum {
				ok = checkNumericOperand(num, filter)
			} else if filter.Operand == "@" {
				ok = checkContainsOperand(value, filter)
			} else {
				log.Errorf("unsupported type for filter %s: %T", filter.Key, value)
				ok = false
			}
		}

		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against list or map values.
func checkContainsOperand(value any, filter Filter) bool {
	if list, ok := result.AsList(value); ok {
		for _, item := range list {
			if fmt.Sprint(item) == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	}

	if fields, ok := result.Fields(value); ok {
		for _, f := range fields {
			if f.Key == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	}

	log.Errorf("unsupported type for contains filtering: %T", value)
	return false
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. A non-numeric target falls back to string comparison.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=", "~":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 attempts to normalize various numeric types to float64.
// Returns (0, false) if v is not a recognized numeric type.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
