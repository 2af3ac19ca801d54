// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/query"
	"github.com/azpipe/azpipe/internal/result"
)

// echo returns the "name" field, failing for names starting with "bad".
func echo(_ context.Context, ns namespace.Namespace) (any, error) {
	name := ns.String("name")
	if strings.HasPrefix(name, "bad") {
		return nil, fmt.Errorf("resource %s not found", name)
	}
	return result.NewOrderedMap("name", name), nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Setenv("AZPIPE_LOG", "warn")
	log.InitLogger()
	prev := log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestExecuteSingle(t *testing.T) {
	inv := &Invoker{Handler: echo, TableTransformer: query.MustCompile("{N: name}")}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.Scalar{V: "vm1"}})
	require.NoError(t, err)

	m, ok := env.Result.(*result.OrderedMap)
	require.True(t, ok, "single result is unwrapped")
	v, _ := m.Get("name")
	assert.Equal(t, "vm1", v)
	assert.NotNil(t, env.TableTransformer)
	assert.False(t, env.IsQueryActive)
	assert.Zero(t, env.ExitCode)
}

func TestExecuteMerges(t *testing.T) {
	inv := &Invoker{Handler: echo}
	ns := namespace.Namespace{"name": namespace.IterateValue{"vm1", "vm2"}}
	env, err := inv.Execute(context.Background(), ns)
	require.NoError(t, err)

	list, ok := env.Result.([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestExecuteHookOrder(t *testing.T) {
	bus := events.NewBus()
	var seen []string
	bus.Register(events.TransformResult, func(ev *events.Event) error {
		m := ev.Data[events.KeyResult].(*result.OrderedMap)
		name, _ := m.Get("name")
		seen = append(seen, "transform "+name.(string))
		m.Set("touched", true)
		return nil
	})
	bus.Register(events.FilterResult, func(ev *events.Event) error {
		seen = append(seen, fmt.Sprintf("filter %d", len(ev.Data[events.KeyResult].([]any))))
		return nil
	})

	inv := &Invoker{Bus: bus, Handler: echo}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.IterateValue{"vm1", "vm2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"transform vm1", "transform vm2", "filter 2"}, seen)

	first := env.Result.([]any)[0].(*result.OrderedMap)
	touched, _ := first.Get("touched")
	assert.Equal(t, true, touched)
}

func TestExecuteQueryHook(t *testing.T) {
	bus := events.NewBus()
	query.Register(bus, query.MustCompile("[].name"))

	inv := &Invoker{Bus: bus, Handler: echo}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.IterateValue{"vm1", "vm2"}})
	require.NoError(t, err)
	assert.True(t, env.IsQueryActive)
	assert.Equal(t, []any{"vm1", "vm2"}, env.Result)
}

func TestExecuteSingleFailure(t *testing.T) {
	inv := &Invoker{Handler: echo}
	_, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.Scalar{V: "bad1"}})
	require.Error(t, err)
	assert.Equal(t, "resource bad1 not found", err.Error())
}

func TestExecutePartialFailure(t *testing.T) {
	logs := captureLogs(t)

	inv := &Invoker{Handler: echo}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.IterateValue{"vm1", "bad2"}})
	require.NoError(t, err)

	// The surviving result is unwrapped like any single result.
	_, ok := env.Result.(*result.OrderedMap)
	assert.True(t, ok)
	assert.Zero(t, env.ExitCode)
	assert.Contains(t, logs.String(), `name=bad2: "resource bad2 not found"`)
	assert.Contains(t, logs.String(), "Encountered more than one exception.")
}

func TestExecuteAllFailed(t *testing.T) {
	logs := captureLogs(t)

	inv := &Invoker{Handler: echo}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.IterateValue{"bad1", "bad2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, env.ExitCode)
	assert.ErrorIs(t, env.Err, ErrMultipleFailures)
	assert.Nil(t, env.Result)
	assert.Contains(t, logs.String(), `name=bad1: "resource bad1 not found"`)
	assert.Contains(t, logs.String(), `name=bad2: "resource bad2 not found"`)
}

func TestExecuteHookError(t *testing.T) {
	boom := errors.New("boom")

	for _, name := range []string{events.TransformResult, events.FilterResult} {
		t.Run(name, func(t *testing.T) {
			bus := events.NewBus()
			bus.Register(name, func(*events.Event) error { return boom })
			inv := &Invoker{Bus: bus, Handler: echo}
			_, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.Scalar{V: "vm1"}})
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inv := &Invoker{Handler: echo}
	_, err := inv.Execute(ctx, namespace.Namespace{"name": namespace.Scalar{V: "vm1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteEmptyIteration(t *testing.T) {
	calls := 0
	inv := &Invoker{Handler: func(context.Context, namespace.Namespace) (any, error) {
		calls++
		return nil, nil
	}}
	env, err := inv.Execute(context.Background(), namespace.Namespace{"name": namespace.IterateValue{}})
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Equal(t, []any{}, env.Result)
}
