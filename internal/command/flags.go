// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/output"
	"github.com/azpipe/azpipe/internal/query"
)

func newFilterFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "comma-separated list of filters to apply to list results",
	}
}

func newSortFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of attributes to sort list results by",
	}
}

// expressionValue is a cli.Value holding a compiled JMESPath expression. The
// expression is compiled while flags are parsed, so a malformed one is an
// argument error and the compiled form is reused afterwards.
type expressionValue struct {
	expr *query.Expression
}

func (v *expressionValue) Set(s string) error {
	expr, err := query.Compile(s)
	if err != nil {
		return err
	}
	v.expr = expr
	return nil
}

func (v *expressionValue) String() string {
	if v == nil || v.expr == nil {
		return ""
	}
	return v.expr.String()
}

// Get returns the compiled *query.Expression, nil when unset.
func (v *expressionValue) Get() any {
	return v.expr
}

// NewExpressionFlag returns a flag whose value is a compiled JMESPath
// expression, read back with Expression.
func NewExpressionFlag(name, usage string) *cli.GenericFlag {
	return &cli.GenericFlag{
		Name:  name,
		Usage: usage,
		Value: &expressionValue{},
	}
}

// Expression returns the compiled expression of a flag built with
// NewExpressionFlag, or nil when the flag was not given.
func Expression(cmd *cli.Command, name string) *query.Expression {
	expr, _ := cmd.Value(name).(*query.Expression)
	return expr
}

// NewGlobalFlags returns the flags every result producing command carries.
// params[0], when given, is the config file the --output default is read
// from.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format: " + strings.Join(output.Names(), ", "),
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AZPIPE_OUTPUT"),
		),
		Value: "json",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	if len(params) == 1 && params[0] != "" {
		outputFlag = ValueChainFlagFromConfigFile("core", params[0], outputFlag)
	}

	flags = []cli.Flag{
		outputFlag,
		NewExpressionFlag("query", "JMESPath query string applied to the result"),
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "increase logging verbosity to show all debug logs",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "increase logging verbosity",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "only-show-errors",
			Usage: "only show errors, suppressing warnings",
			Value: false,
		},
	}

	return
}

// ValueChainFlagFromConfigFile adds a config file source, keyed section.name,
// to the end of the flag's Sources chain.
func ValueChainFlagFromConfigFile(section string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(section+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
