// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/azpipe/azpipe/internal/config"
	"github.com/azpipe/azpipe/internal/meta"
	"github.com/azpipe/azpipe/internal/namespace"
)

// errNoDocument is returned when no resource document source is available.
var errNoDocument = errors.New("no resource document: pass a file, set core.inventory or pipe one on stdin")

// ExitError carries the process exit code of a failed invocation. The
// message has already been written when Reported is true.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout returns the writer command output goes to.
func stdout(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stdout; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := GetMeta(cmd).Stderr; w != nil {
		return w
	}
	return os.Stderr
}

// documentPath returns the resource document to read: the first positional
// argument, then config core.inventory, then stdin when it is not a terminal.
func documentPath(cmd *cli.Command) (string, error) {
	if path := cmd.Args().First(); path != "" {
		return path, nil
	}
	if path, _ := config.GetString("core.inventory", ""); path != "" {
		return path, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errNoDocument
	}
	return "-", nil
}

// argumentValue converts the values of a repeatable flag into a namespace
// value. More than one value makes the command run once per value.
func argumentValue(values []string) (namespace.Value, bool) {
	switch len(values) {
	case 0:
		return nil, false
	case 1:
		return namespace.Scalar{V: values[0]}, true
	}
	iv := make(namespace.IterateValue, len(values))
	for i, v := range values {
		iv[i] = v
	}
	return iv, true
}
