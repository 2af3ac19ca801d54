// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseOrderAndSharedData(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Register(TransformResult, func(ev *Event) error {
		calls = append(calls, "first")
		ev.Data[KeyResult] = []any{ev.Data[KeyResult]}
		return nil
	})
	bus.Register(TransformResult, func(ev *Event) error {
		calls = append(calls, "second")
		assert.Equal(t, []any{"raw"}, ev.Data[KeyResult], "sees the first handler's change")
		return nil
	})
	bus.Register(FilterResult, func(ev *Event) error {
		calls = append(calls, "other event")
		return nil
	})

	data := Data{KeyResult: "raw"}
	require.NoError(t, bus.Raise(TransformResult, data))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, []any{"raw"}, data[KeyResult])
}

func TestSelfUnregisterRunsOnce(t *testing.T) {
	bus := NewBus()
	oneShot, after := 0, 0

	bus.Register(FilterResult, func(ev *Event) error {
		oneShot++
		ev.Unregister()
		return nil
	})
	bus.Register(FilterResult, func(ev *Event) error {
		after++
		return nil
	})

	require.NoError(t, bus.Raise(FilterResult, Data{}))
	require.NoError(t, bus.Raise(FilterResult, Data{}))
	require.NoError(t, bus.Raise(FilterResult, Data{}))

	assert.Equal(t, 1, oneShot)
	assert.Equal(t, 3, after, "removal does not skip the next handler")
	assert.Equal(t, 1, bus.Handlers(FilterResult))
}

func TestUnregisterOtherDuringRaise(t *testing.T) {
	bus := NewBus()
	var second HandlerID
	calls := 0

	bus.Register(FilterResult, func(ev *Event) error {
		bus.Unregister(FilterResult, second)
		return nil
	})
	second = bus.Register(FilterResult, func(ev *Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Raise(FilterResult, nil))
	assert.Equal(t, 1, calls, "snapshot still calls the removed handler this time")

	require.NoError(t, bus.Raise(FilterResult, nil))
	assert.Equal(t, 1, calls)
}

func TestRegisterDuringRaise(t *testing.T) {
	bus := NewBus()
	late := 0
	bus.Register(TransformResult, func(ev *Event) error {
		bus.Register(TransformResult, func(*Event) error {
			late++
			return nil
		})
		return nil
	})

	require.NoError(t, bus.Raise(TransformResult, nil))
	assert.Equal(t, 0, late)
	require.NoError(t, bus.Raise(TransformResult, nil))
	assert.Equal(t, 1, late)
}

func TestRaiseFailFast(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	reached := false

	bus.Register(TransformResult, func(*Event) error { return boom })
	bus.Register(TransformResult, func(*Event) error {
		reached = true
		return nil
	})

	err := bus.Raise(TransformResult, Data{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), TransformResult)
	assert.False(t, reached)
}

func TestUnregisterUnknown(t *testing.T) {
	bus := NewBus()
	assert.False(t, bus.Unregister("nope", 42))
	assert.NoError(t, bus.Raise("nope", nil))
}
