// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package events is a small named-event bus used by the command invoker to
// let hooks rewrite a result before it is rendered.
package events

import (
	"fmt"
	"slices"

	"github.com/azpipe/azpipe/internal/log"
)

// Well-known events raised by the invoker, in the order they fire.
const (
	// TransformResult fires once per executed namespace with the raw result.
	TransformResult = "Invoker.TransformResult"
	// FilterResult fires once per invocation with the merged result.
	FilterResult = "Invoker.FilterResult"
)

// Keys of Data shared by the invoker and its hooks.
const (
	KeyResult      = "result"
	KeyQueryActive = "query_active"
)

// Data is the mutable payload shared by all handlers of one Raise.
type Data map[string]any

// HandlerID identifies a registration so it can be removed later.
type HandlerID uint64

// Handler reacts to an event. Returning an error aborts the Raise.
type Handler func(ev *Event) error

// Event is handed to each handler during a Raise.
type Event struct {
	Name string
	Data Data

	bus *Bus
	id  HandlerID
}

// Unregister removes the handler currently being invoked. The current Raise
// is unaffected; later raises no longer call it.
func (e *Event) Unregister() {
	e.bus.Unregister(e.Name, e.id)
}

type registration struct {
	id      HandlerID
	handler Handler
}

// Bus maps event names to handlers in registration order. It is not safe for
// concurrent use; one Bus lives for one command invocation.
type Bus struct {
	handlers map[string][]registration
	nextID   HandlerID
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]registration)}
}

// Register appends h to the handlers of name.
func (b *Bus) Register(name string, h Handler) HandlerID {
	b.nextID++
	b.handlers[name] = append(b.handlers[name], registration{id: b.nextID, handler: h})
	log.Tracef("events: registered handler %d for %s", b.nextID, name)
	return b.nextID
}

// Unregister removes the handler id from name. It reports whether anything
// was removed.
func (b *Bus) Unregister(name string, id HandlerID) bool {
	regs := b.handlers[name]
	i := slices.IndexFunc(regs, func(r registration) bool { return r.id == id })
	if i < 0 {
		return false
	}
	// Build a new slice so a snapshot held by a running Raise stays intact.
	b.handlers[name] = slices.Concat(regs[:i], regs[i+1:])
	log.Tracef("events: unregistered handler %d for %s", id, name)
	return true
}

// Handlers reports how many handlers are registered for name.
func (b *Bus) Handlers(name string) int {
	return len(b.handlers[name])
}

// Raise calls every handler registered for name, in registration order, with
// the same data. Handlers registered or removed while the raise is running do
// not change who is called this time. The first handler error stops the raise
// and is returned.
func (b *Bus) Raise(name string, data Data) error {
	snapshot := slices.Clone(b.handlers[name])
	log.Debugf("events: raising %s to %d handler(s)", name, len(snapshot))

	if data == nil {
		data = Data{}
	}

	for _, reg := range snapshot {
		ev := &Event{Name: name, Data: data, bus: b, id: reg.id}
		if err := reg.handler(ev); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
