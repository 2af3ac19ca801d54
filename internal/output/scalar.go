// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/azpipe/azpipe/internal/result"
)

// scalarString renders a leaf value for the text formats. Booleans use Go's
// lowercase form and nil renders as nilText. Containers that end up in a
// cell are written as compact JSON.
func scalarString(v any, nilText string) string {
	switch val := v.(type) {
	case nil:
		return nilText
	case string:
		return val
	case []byte:
		return strings.ToValidUTF8(string(val), "�")
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	}

	if result.IsContainer(v) {
		if b, err := json.Marshal(result.ToPlain(v)); err == nil {
			return string(b)
		}
	}

	return fmt.Sprint(v)
}

// wordString is scalarString for the human readable views: booleans are
// spelled True and False.
func wordString(v any, nilText string) string {
	if b, ok := v.(bool); ok {
		if b {
			return "True"
		}
		return "False"
	}
	return scalarString(v, nilText)
}

// formatFloat writes f in its shortest form, switching to exponent notation
// only for very large or very small magnitudes, the way encoding/json does.
func formatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.FormatFloat(f, format, -1, bits)
}

// isNumber reports whether v is a Go numeric value. Strings that look like
// numbers do not count.
func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
