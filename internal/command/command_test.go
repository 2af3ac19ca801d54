// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azpipe/azpipe/internal/inventory"
	"github.com/azpipe/azpipe/internal/invoke"
	"github.com/azpipe/azpipe/internal/meta"
	"github.com/azpipe/azpipe/internal/namespace"
)

const resources = "testdata/resources.json"

// run executes azpipe with args and returns what it wrote to stdout and
// stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("AZPIPE_OUTPUT_ENCODING", "")

	var stdout, stderr bytes.Buffer
	app := NewApp(meta.Meta{
		Args:    append([]string{"azpipe"}, args...),
		Context: context.Background(),
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	err := app.Run(context.Background(), append([]string{"azpipe"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestResourceShowByID(t *testing.T) {
	out, _, err := run(t, "resource", "show", "-o", "json", "--query", "location",
		"--ids", "/SUBSCRIPTIONS/0000/resourceGroups/rg-web/providers/Microsoft.Compute/virtualMachines/vm1",
		resources)
	require.NoError(t, err)
	assert.Equal(t, "\"westus\"\n", out)
}

func TestResourceShowIteratesRepeatedFlags(t *testing.T) {
	out, _, err := run(t, "resource", "show", "-o", "tsv", "--query", "[].location",
		"--name", "vm1", "-g", "rg-web", "-g", "rg-data", resources)
	require.NoError(t, err)
	assert.Equal(t, "westus\neastus\n", out)
}

func TestResourceShowNotFound(t *testing.T) {
	out, _, err := run(t, "resource", "show", "-o", "json", "--ids", "nope", resources)
	require.Error(t, err)
	var nf *inventory.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Empty(t, out)
}

func TestResourceShowAllFailed(t *testing.T) {
	out, errOut, err := run(t, "resource", "show", "-o", "json",
		"--ids", "nope1", "--ids", "nope2", resources)
	require.Error(t, err)

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.Code)
	assert.True(t, exit.Reported)
	assert.ErrorIs(t, err, invoke.ErrMultipleFailures)
	assert.Contains(t, errOut, "Encountered more than one exception.")
	assert.Empty(t, out)
}

func TestResourceListTable(t *testing.T) {
	out, _, err := run(t, "resource", "list", "-o", "table", "-g", "rg-data", resources)
	require.NoError(t, err)

	kind := "Microsoft.Compute/virtualMachines"
	want := "Name   ResourceGroup  Location  Kind\n" +
		"-----  -------------  --------  " + strings.Repeat("-", len(kind)) + "\n" +
		"disk1  rg-data        eastus    Microsoft.Compute/disks\n" +
		"vm1    rg-data        eastus    " + kind + "\n"
	assert.Equal(t, want, out)
}

func TestResourceListQueryDisablesTransformer(t *testing.T) {
	out, _, err := run(t, "resource", "list", "-o", "table", "--query", "[].{Resource:name}", resources)
	require.NoError(t, err)
	assert.Equal(t, "Resource\n--------\nvm1\ndisk1\nvm1\n", out)
}

func TestResourceListFilterAndSort(t *testing.T) {
	out, _, err := run(t, "resource", "list", "-o", "tsv", "--query", "[].name",
		"--filter", "location=eastus", "--sort", "name", resources)
	require.NoError(t, err)
	assert.Equal(t, "disk1\nvm1\n", out)

	out, _, err = run(t, "resource", "list", "-o", "tsv", "--query", "[].location",
		"--sort", "-location", resources)
	require.NoError(t, err)
	assert.Equal(t, "westus\neastus\neastus\n", out)
}

func TestResourceListOutputNone(t *testing.T) {
	out, _, err := run(t, "resource", "list", "-o", "none", resources)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad output", []string{"resource", "list", "-o", "xml", resources}},
		{"bad query", []string{"resource", "list", "-o", "json", "--query", "[?", resources}},
		{"bad table transformer", []string{"render", "--table-transformer", "{", "testdata/document.json"}},
		{"missing lookup", []string{"resource", "show", "-o", "json", resources}},
		{"missing file", []string{"resource", "list", "-o", "json", "testdata/nope.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestRenderDocument(t *testing.T) {
	out, _, err := run(t, "render", "-o", "json", "--query", "alpha", "testdata/document.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": null,\n  \"b\": true\n}\n", out, "json keys are sorted")

	out, _, err = run(t, "render", "-o", "yaml", "--query", "items[].n", "testdata/document.json")
	require.NoError(t, err)
	assert.Equal(t, "- x\n- \"y\"\n", out, "yaml quotes boolean-like strings")

	out, _, err = run(t, "render", "-o", "yaml", "--query", "items[].v", "testdata/document.json")
	require.NoError(t, err)
	assert.Equal(t, "- 2\n- 1234567\n", out)
}

func TestRenderTableTransformer(t *testing.T) {
	out, _, err := run(t, "render", "-o", "table", "--table-transformer", "items[].{Item:n}",
		"testdata/document.json")
	require.NoError(t, err)
	assert.Equal(t, "Item\n----\nx\ny\n", out)
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _azpipe azpipe")
	assert.Contains(t, out, "json jsonc yaml yamlc table tsv list text none")
	assert.NotContains(t, out, formatsPlaceholder)

	out, _, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _azpipe azpipe")

	t.Setenv("SHELL", "/bin/fish")
	out, errOut, err := run(t, "completion")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "usage: azpipe completion")
}

func TestArgumentValue(t *testing.T) {
	_, ok := argumentValue(nil)
	assert.False(t, ok)

	v, ok := argumentValue([]string{"a"})
	assert.True(t, ok)
	assert.Equal(t, namespace.Scalar{V: "a"}, v)

	v, _ = argumentValue([]string{"a", "b"})
	assert.Equal(t, namespace.IterateValue{"a", "b"}, v)
}

func TestExpressionFlag(t *testing.T) {
	v := &expressionValue{}
	assert.Nil(t, v.Get())
	assert.Equal(t, "", v.String())
	require.NoError(t, v.Set("[].name"))
	assert.Equal(t, "[].name", v.String())
	assert.Error(t, v.Set("[?"))
}

func TestOutputValidator(t *testing.T) {
	assert.NoError(t, OutputValidator("TEXT"))
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(3))
}
