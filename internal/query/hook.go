// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/log"
)

// Register installs expr as the --query filter on bus. The handler runs on
// the next FilterResult only: it replaces the result with the search result,
// marks the query as active and unregisters itself.
func Register(bus *events.Bus, expr *Expression) events.HandlerID {
	return bus.Register(events.FilterResult, func(ev *events.Event) error {
		ev.Unregister()

		out, err := expr.Search(ev.Data[events.KeyResult])
		if err != nil {
			return fmt.Errorf("query %q: %w", expr.String(), err)
		}
		log.Debugf("query: applied %q", expr.String())

		ev.Data[events.KeyResult] = out
		ev.Data[events.KeyQueryActive] = true
		return nil
	})
}
