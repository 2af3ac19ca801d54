// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/events"
	"github.com/azpipe/azpipe/internal/hooks"
	"github.com/azpipe/azpipe/internal/invoke"
	"github.com/azpipe/azpipe/internal/log"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/output"
	"github.com/azpipe/azpipe/internal/query"
	"github.com/azpipe/azpipe/internal/result"
)

// ResultActionRunner encapsulates the action every result producing command
// shares. It builds the namespace, registers the result hooks, runs the
// invoker, and hands the envelope to the output producer. Only the namespace
// and the handler differ between commands.
type ResultActionRunner struct {
	CommandName string

	// NamespaceFn builds the raw namespace from the parsed flags.
	NamespaceFn func(*cli.Command) namespace.Namespace

	// HandlerFn prepares the per-namespace handler, e.g. by loading the
	// resource document once for all jobs.
	HandlerFn func(context.Context, *cli.Command) (invoke.Handler, error)

	// TransformerFn returns the table transformer, nil for none.
	TransformerFn func(*cli.Command) result.Transformer
}

// Run executes the action with the provided context and command.
func (rar *ResultActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	format, err := output.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	handler, err := rar.HandlerFn(ctx, cmd)
	if err != nil {
		return err
	}

	bus := events.NewBus()
	registerHooks(bus, cmd)
	log.Debugf("%s: %d %s and %d %s hooks", rar.CommandName,
		bus.Handlers(events.TransformResult), events.TransformResult,
		bus.Handlers(events.FilterResult), events.FilterResult)

	ns := namespace.Namespace{}
	if rar.NamespaceFn != nil {
		ns = rar.NamespaceFn(cmd)
	}
	log.Debugf("%s: namespace %s", rar.CommandName, ns.Describe(namespace.IterateKeys(ns)))

	var transformer result.Transformer
	if rar.TransformerFn != nil {
		transformer = rar.TransformerFn(cmd)
	}

	inv := &invoke.Invoker{
		Bus:              bus,
		Handler:          handler,
		TableTransformer: transformer,
	}
	env, err := inv.Execute(ctx, ns)
	if err != nil {
		return err
	}

	return emit(cmd, env, format)
}

// registerHooks wires --filter, --sort and --query onto bus. Filter and sort
// only act on list results.
func registerHooks(bus *events.Bus, cmd *cli.Command) {
	if hooks.RegisterFilter(bus, cmd.String("filter")) {
		log.Debugf("registered filter hook: %s", cmd.String("filter"))
	}
	if hooks.RegisterSort(bus, cmd.String("sort")) {
		log.Debugf("registered sort hook: %s", cmd.String("sort"))
	}
	if expr := Expression(cmd, "query"); expr != nil {
		query.Register(bus, expr)
		log.Debugf("registered query hook: %s", expr)
	}
}

// emit writes the envelope. An envelope error is reported on stderr and
// becomes the exit code, and a nil result prints nothing.
func emit(cmd *cli.Command, env *result.Envelope, format output.Format) error {
	if env.Err != nil {
		fmt.Fprintln(stderr(cmd), env.Err)
		return &ExitError{Code: env.ExitCode, Err: env.Err, Reported: true}
	}
	if env.Result == nil {
		return nil
	}

	return output.NewProducer().Out(env, format, stdout(cmd))
}
