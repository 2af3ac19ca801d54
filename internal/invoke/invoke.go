// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package invoke runs a command handler once per exploded namespace and
// shapes the collected results into an envelope.
package invoke

import (
	"context"
	"errors"
	"fmt"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/result"
)

// ErrMultipleFailures is the envelope error when every job failed and there
// was more than one failure.
var ErrMultipleFailures = errors.New("Encountered more than one exception.")

// Handler executes a command for one namespace and returns its raw result.
type Handler func(ctx context.Context, ns namespace.Namespace) (any, error)

// Invoker ties a command handler to the hooks registered on Bus.
type Invoker struct {
	Bus              *events.Bus
	Handler          Handler
	TableTransformer result.Transformer
}

type failure struct {
	label string
	err   error
}

// Execute explodes ns, runs Handler for every resulting namespace in order
// and raises TransformResult after each successful job. Results are merged,
// a single result unwrapped, and FilterResult raised once on the merged
// value.
//
// A lone failure with no results is returned as is. When several jobs fail,
// each failure is logged as a warning; with no results at all the envelope
// carries ErrMultipleFailures and exit code 1. Hook errors abort Execute.
func (inv *Invoker) Execute(ctx context.Context, ns namespace.Namespace) (*result.Envelope, error) {
	bus := inv.Bus
	if bus == nil {
		bus = events.NewBus()
	}

	keys := namespace.IterateKeys(ns)

	results := []any{}
	var failures []failure
	job := 0
	for expanded := range namespace.Explode(ns) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job++

		label := expanded.Describe(keys)
		if label == "" {
			label = fmt.Sprintf("job %d", job)
		}
		log.Debugf("invoke: running %s", label)

		raw, err := inv.Handler(ctx, expanded)
		if err != nil {
			log.Debugf("invoke: %s failed: %v", label, err)
			failures = append(failures, failure{label: label, err: err})
			continue
		}

		data := events.Data{events.KeyResult: raw}
		if err := bus.Raise(events.TransformResult, data); err != nil {
			return nil, err
		}
		results = append(results, data[events.KeyResult])
	}

	if len(failures) == 1 && len(results) == 0 {
		return nil, failures[0].err
	}
	if len(failures) > 0 {
		for _, f := range failures {
			log.Warnf("%s: \"%v\"", f.label, f.err)
		}
		if len(results) == 0 {
			return &result.Envelope{ExitCode: 1, Err: ErrMultipleFailures}, nil
		}
		log.Warnf("%s", ErrMultipleFailures)
	}

	var merged any = results
	if len(results) == 1 {
		merged = results[0]
	}

	data := events.Data{events.KeyResult: merged}
	if err := bus.Raise(events.FilterResult, data); err != nil {
		return nil, err
	}

	queryActive, _ := data[events.KeyQueryActive].(bool)

	return &result.Envelope{
		Result:           data[events.KeyResult],
		TableTransformer: inv.TableTransformer,
		IsQueryActive:    queryActive,
	}, nil
}
