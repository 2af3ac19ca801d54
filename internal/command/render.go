// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/invoke"
	"github.com/azpipe/azpipe/internal/meta"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/result"
)

// renderHandler reads an arbitrary JSON document, which becomes the result
// unchanged.
func renderHandler(ctx context.Context, cmd *cli.Command) (invoke.Handler, error) {
	path, err := documentPath(cmd)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	doc, err := result.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return func(context.Context, namespace.Namespace) (any, error) {
		return doc, nil
	}, nil
}

func renderCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &ResultActionRunner{
		CommandName: "render",
		HandlerFn:   renderHandler,
		TransformerFn: func(cmd *cli.Command) result.Transformer {
			if expr := Expression(cmd, "table-transformer"); expr != nil {
				return expr
			}
			return nil
		},
	}

	return (&ResultCommandBuilder{
		Name:      "render",
		Usage:     "render a JSON document in any output format",
		UsageText: "azpipe render [file] [--table-transformer EXPR]",
		Flags: []cli.Flag{
			NewExpressionFlag("table-transformer", "JMESPath expression shaping the table view"),
			newFilterFlag(),
			newSortFlag(),
		},
		Action: runner.Run,
		Meta:   meta,
	}).Build()
}
