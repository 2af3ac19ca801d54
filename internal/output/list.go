// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/azpipe/azpipe/internal/result"
)

// listIndent is the width of one nesting level.
const listIndent = "   "

// ListRenderer writes an indented "Key : value" dump. Display keys are
// derived from camelCase field names and cached for the renderer's lifetime.
// A ListRenderer is not safe for concurrent use.
type ListRenderer struct {
	caser cases.Caser
	keys  map[string]string
}

// NewListRenderer returns a ListRenderer with an empty key cache.
func NewListRenderer() *ListRenderer {
	return &ListRenderer{
		caser: cases.Title(language.Und),
		keys:  map[string]string{},
	}
}

// Render implements Renderer.
func (l *ListRenderer) Render(env *result.Envelope) (string, error) {
	items, ok := result.AsList(env.Result)
	if !ok {
		items = []any{env.Result}
	}

	var sb strings.Builder
	for _, item := range items {
		l.dump(&sb, item, 0)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (l *ListRenderer) dump(sb *strings.Builder, v any, indent int) {
	if list, ok := result.AsList(v); ok {
		for _, item := range list {
			l.dump(sb, item, indent)
		}
		return
	}

	fields, ok := result.Fields(v)
	if !ok {
		writeListLine(sb, indent, wordString(v, "None"))
		return
	}

	sort.SliceStable(fields, func(i, j int) bool {
		gi, gj := listGroup(fields[i].Value), listGroup(fields[j].Value)
		if gi != gj {
			return gi < gj
		}
		return fields[i].Key < fields[j].Key
	})

	width := 0
	for _, f := range fields {
		if listGroup(f.Value) == 0 {
			width = max(width, len([]rune(l.displayKey(f.Key))))
		}
	}

	for _, f := range fields {
		key := l.displayKey(f.Key)
		if listGroup(f.Value) == 0 {
			writeListLine(sb, indent, fmt.Sprintf("%-*s : %s", width, key, wordString(f.Value, "None")))
			continue
		}

		writeListLine(sb, indent, key+" :")
		if isEmptyContainer(f.Value) {
			writeListLine(sb, indent+1, "None")
			continue
		}
		l.dump(sb, f.Value, indent+1)
	}
}

// listGroup orders fields: scalars, then lists, then maps.
func listGroup(v any) int {
	if result.IsMap(v) {
		return 2
	}
	if _, ok := result.AsList(v); ok {
		return 1
	}
	return 0
}

func isEmptyContainer(v any) bool {
	if fields, ok := result.Fields(v); ok {
		return len(fields) == 0
	}
	if list, ok := result.AsList(v); ok {
		return len(list) == 0
	}
	return false
}

func writeListLine(sb *strings.Builder, indent int, line string) {
	sb.WriteString(strings.Repeat(listIndent, indent))
	sb.WriteString(line)
	sb.WriteByte('\n')
}

// displayKey turns a field name such as "provisioningState" or "vmID" into
// "Provisioning State" or "Vm Id".
func (l *ListRenderer) displayKey(key string) string {
	if dk, ok := l.keys[key]; ok {
		return dk
	}
	dk := l.caser.String(strings.Join(splitWords(key), " "))
	l.keys[key] = dk
	return dk
}

// splitWords breaks a field name at underscores, dashes, spaces, lower to
// upper transitions and the end of an acronym ("VMName" is "VM", "Name").
func splitWords(key string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(key)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}
