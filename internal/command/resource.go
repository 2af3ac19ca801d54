// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/inventory"
	"github.com/azpipe/azpipe/internal/invoke"
	"github.com/azpipe/azpipe/internal/meta"
	"github.com/azpipe/azpipe/internal/namespace"
	"github.com/azpipe/azpipe/internal/query"
	"github.com/azpipe/azpipe/internal/result"
)

// listTransformer is the table view of resource list.
var listTransformer = query.MustCompile(
	"[].{Name:name, ResourceGroup:resourceGroup, Location:location, Kind:type}")

// resourceNamespace maps the lookup flags onto namespace fields.
func resourceNamespace(cmd *cli.Command) namespace.Namespace {
	ns := namespace.Namespace{}
	for flag, key := range map[string]string{
		"ids":            "ids",
		"name":           "name",
		"resource-group": "resource_group",
	} {
		if v, ok := argumentValue(cmd.StringSlice(flag)); ok {
			ns[key] = v
		}
	}
	return ns
}

// inventoryHandler loads the resource document once and returns the lookup
// selected by pick for every job.
func inventoryHandler(pick func(*inventory.Inventory) invoke.Handler) func(context.Context, *cli.Command) (invoke.Handler, error) {
	return func(ctx context.Context, cmd *cli.Command) (invoke.Handler, error) {
		path, err := documentPath(cmd)
		if err != nil {
			return nil, err
		}
		inv, err := inventory.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return pick(inv), nil
	}
}

func resourceCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "resource",
		Usage: "query resources in a resource document",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			resourceShowCommandBuilder(meta),
			resourceListCommandBuilder(meta),
		},
	}
}

func resourceShowCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &ResultActionRunner{
		CommandName: "resource show",
		NamespaceFn: resourceNamespace,
		HandlerFn: inventoryHandler(func(inv *inventory.Inventory) invoke.Handler {
			return inv.Show
		}),
	}

	return (&ResultCommandBuilder{
		Name:      "show",
		Usage:     "show one or more resources",
		UsageText: "azpipe resource show [file] --ids ID... | --name NAME [--resource-group RG]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ids",
				Usage: "resource ids, repeat to show several",
			},
			&cli.StringSliceFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "resource name",
			},
			&cli.StringSliceFlag{
				Name:    "resource-group",
				Aliases: []string{"g"},
				Usage:   "resource group name",
			},
		},
		Action: runner.Run,
		Meta:   meta,
	}).Build()
}

func resourceListCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &ResultActionRunner{
		CommandName: "resource list",
		NamespaceFn: resourceNamespace,
		HandlerFn: inventoryHandler(func(inv *inventory.Inventory) invoke.Handler {
			return inv.List
		}),
		TransformerFn: func(*cli.Command) result.Transformer {
			return listTransformer
		},
	}

	return (&ResultCommandBuilder{
		Name:      "list",
		Usage:     "list resources",
		UsageText: "azpipe resource list [file] [--resource-group RG]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "resource-group",
				Aliases: []string{"g"},
				Usage:   "resource group name",
			},
			newFilterFlag(),
			newSortFlag(),
		},
		Action: runner.Run,
		Meta:   meta,
	}).Build()
}
