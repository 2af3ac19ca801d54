// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/azpipe/azpipe/internal/meta"
	"github.com/azpipe/azpipe/internal/output"
)

// formatsPlaceholder is replaced by the output format names when a script is
// emitted.
const formatsPlaceholder = "@FORMATS@"

const bashCompletionScript = `# bash completion for azpipe
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_azpipe()
{
    local cur prev group cmd opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "resource render completion --help --version" -- "$cur") )
        return 0
    fi

    group=${COMP_WORDS[1]}
    cmd=${COMP_WORDS[2]}
    local common="--output -o --query --debug --verbose --only-show-errors"

    case "$group" in
        resource)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "show list" -- "$cur") )
                return 0
            fi
            case "$cmd" in
                show)
                    opts="$common --ids --name -n --resource-group -g"
                    ;;
                list)
                    opts="$common --resource-group -g --filter -f --sort -s"
                    ;;
            esac
            ;;
        render)
            opts="$common --table-transformer --filter -f --sort -s"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "@FORMATS@" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise, we're on the optional document positional.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _azpipe azpipe
`

const zshCompletionScript = `#compdef azpipe

_azpipe() {
  local -a groups
  groups=(
    'resource:query resources in a resource document'
    'render:render a JSON document in any output format'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-o --output)'{-o,--output}'[output format]:format:(@FORMATS@)'
  '--query[JMESPath query string]:query'
  '--debug[show all debug logs]'
  '--verbose[increase logging verbosity]'
  '--only-show-errors[only show errors]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'azpipe commands' groups
    return
  fi

  case $words[2] in
    resource)
      if (( CURRENT == 3 )); then
        _values 'resource commands' show list
        return
      fi
      case $words[3] in
        show)
          _arguments -C \
            $common \
            '*--ids[resource id]:id' \
            '*'{-n,--name}'[resource name]:name' \
            '*'{-g,--resource-group}'[resource group]:group' \
            '::document:_files'
          ;;
        list)
          _arguments -C \
            $common \
            '*'{-g,--resource-group}'[resource group]:group' \
            '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
            '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
            '::document:_files'
          ;;
      esac
      ;;
    render)
      _arguments -C \
        $common \
        '--table-transformer[JMESPath table view]:expression' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-s --sort)'{-s,--sort}'[sort attributes]:attrs' \
        '::document:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _azpipe azpipe
`

// completionScript returns the script for shell with the format names filled
// in, or "" for an unsupported shell.
func completionScript(shell string) string {
	var script string
	switch shell {
	case "bash":
		script = bashCompletionScript
	case "zsh":
		script = zshCompletionScript
	default:
		return ""
	}
	return strings.ReplaceAll(script, formatsPlaceholder, strings.Join(output.Names(), " "))
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	script := completionScript(shell)
	if script == "" {
		fmt.Fprintln(stderr(cmd), "usage: azpipe completion [bash|zsh]")
		return nil
	}
	fmt.Fprint(stdout(cmd), script)
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "azpipe completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
