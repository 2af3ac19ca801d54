// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/result"
)

// ErrTableUnavailable matches every TableError.
var ErrTableUnavailable = errors.New("Table output unavailable. " +
	"Use the --query option to specify an appropriate query. " +
	"Use --debug for more info.")

// errNoColumns is the cause when no item has a displayable field.
var errNoColumns = errors.New("unable to extract fields for table")

// TableError reports that a result cannot be shown as a table. Cause holds
// the underlying failure.
type TableError struct {
	Cause error
}

func (e *TableError) Error() string {
	return ErrTableUnavailable.Error()
}

func (e *TableError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrTableUnavailable) hold.
func (e *TableError) Is(target error) bool {
	return target == ErrTableUnavailable
}

// tableSkipKeys are fields that are noise in a table.
var tableSkipKeys = map[string]bool{
	"id":   true,
	"type": true,
	"etag": true,
}

// tableGap separates adjacent columns.
const tableGap = 2

const nbsp = "\u00a0"

// TableRenderer shows the flat fields of each item as aligned columns.
var TableRenderer = RenderFunc(renderTable)

func renderTable(env *result.Envelope) (string, error) {
	out, err := buildTable(env)
	if err != nil {
		log.WithError(err).Debug("table output unavailable")
		return "", &TableError{Cause: err}
	}
	return out, nil
}

func buildTable(env *result.Envelope) (string, error) {
	v := env.Result
	if env.TableTransformer != nil && !env.IsQueryActive {
		transformed, err := env.TableTransformer.Transform(v)
		if err != nil {
			return "", fmt.Errorf("table transformer: %w", err)
		}
		v = transformed
	}

	items, ok := result.AsList(v)
	if !ok {
		items = []any{v}
	}
	if len(items) == 0 {
		return "\n", nil
	}

	// A query or transformer already chose the column order.
	sortKeys := !env.IsQueryActive && env.TableTransformer == nil

	var columns []string
	seen := map[string]bool{}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		fields := tableFields(item, sortKeys)
		row := make(map[string]any, len(fields))
		for _, f := range fields {
			if !seen[f.Key] {
				seen[f.Key] = true
				columns = append(columns, f.Key)
			}
			row[f.Key] = f.Value
		}
		rows = append(rows, row)
	}

	if len(columns) == 0 {
		return "", errNoColumns
	}

	return formatTable(columns, rows), nil
}

// tableFields flattens one item into header/value pairs. Maps keep their
// scalar fields, lists become Column1..N and anything else is a single
// Result column.
func tableFields(item any, sortKeys bool) []result.Field {
	if fields, ok := result.Fields(item); ok {
		if sortKeys {
			sort.SliceStable(fields, func(i, j int) bool {
				return fields[i].Key < fields[j].Key
			})
		}

		kept := make([]result.Field, 0, len(fields))
		for _, f := range fields {
			if tableSkipKeys[f.Key] || f.Value == nil || result.IsContainer(f.Value) {
				continue
			}
			kept = append(kept, result.Field{Key: capitalizeFirst(f.Key), Value: f.Value})
		}
		return kept
	}

	if list, ok := result.AsList(item); ok {
		fields := make([]result.Field, len(list))
		for i, val := range list {
			fields[i] = result.Field{Key: fmt.Sprintf("Column%d", i+1), Value: val}
		}
		return fields
	}

	return []result.Field{{Key: "Result", Value: item}}
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// tableCell renders a cell.
func tableCell(v any) string {
	return wordString(v, "")
}

// formatTable lays out a header line, a dashed rule and one line per row.
// Columns holding only numbers are right aligned.
func formatTable(columns []string, rows []map[string]any) string {
	widths := make([]int, len(columns))
	numeric := make([]bool, len(columns))
	for c, col := range columns {
		widths[c] = lipgloss.Width(col)
		numeric[c] = true
		present := false
		for _, row := range rows {
			v, ok := row[col]
			if !ok || v == nil {
				continue
			}
			present = true
			if !isNumber(v) {
				numeric[c] = false
			}
			widths[c] = max(widths[c], lipgloss.Width(tableCell(v)))
		}
		numeric[c] = numeric[c] && present
	}

	data := make([][]string, 0, len(rows)+1)
	rule := make([]string, len(columns))
	for c := range columns {
		rule[c] = strings.Repeat("-", widths[c])
	}
	data = append(data, rule)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for c, col := range columns {
			cells[c] = tableCell(row[col])
		}
		data = append(data, cells)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left)
			if numeric[col] {
				style = style.Align(lipgloss.Right)
			}
			if col > 0 {
				style = style.PaddingLeft(tableGap)
			}
			return style
		}).
		Headers(columns...).
		Rows(data...)

	// lipgloss pads with non-breaking spaces; the table is plain text.
	lines := strings.Split(strings.ReplaceAll(t.String(), nbsp, " "), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}
