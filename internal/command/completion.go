// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for yd
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_yd()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local opts="--color --counts -c --embedded-lines --exit-code -e --filter --focus -f --interactive -i --no-sort --output -o --paths-only -p --sort-keys --sort-output -s --version -v --help"

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "completion" -- "$cur") $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
    fi

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "tree counts paths json yaml merge-patch json-delta" -- "$cur") )
            return 0
            ;;
        --color)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
        --filter|--focus|-f|--sort-keys)
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # LEFT and RIGHT documents
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -o filenames -F _yd yd
`

const zshCompletionScript = `#compdef yd

_yd() {
  if (( CURRENT == 2 )) && [[ $words[2] == c* ]]; then
    _alternative 'commands:command:((completion\:"generate shell completion script"))' 'files:document:_files'
    return
  fi

  if [[ $words[2] == completion ]]; then
    _arguments '2: :((bash zsh))'
    return
  fi

  _arguments -s \
    '--color[colorize output]:when:(auto always never)' \
    '(-c --counts)'{-c,--counts}'[print change counts]' \
    '--embedded-lines[line diff for embedded documents]' \
    '(-e --exit-code)'{-e,--exit-code}'[exit 1 when documents differ]' \
    '--filter[keep only matching changes]:expression' \
    '(-f --focus)'{-f,--focus}'[compare a subtree]:path' \
    '(-i --interactive)'{-i,--interactive}'[browse changes]' \
    '--no-sort[compare sequences by position]' \
    '(-o --output)'{-o,--output}'[output format]:format:(tree counts paths json yaml merge-patch json-delta)' \
    '(-p --paths-only)'{-p,--paths-only}'[print change paths]' \
    '--sort-keys[record fields to sort by]:keys' \
    '(-s --sort-output)'{-s,--sort-output}'[order changes by kind]' \
    '(-v --version)'{-v,--version}'[version]' \
    '1:left document:_files' \
    '2:right document:_files'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _yd yd
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: yd completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "yd completion [bash|zsh]",
		Action:    completionCommandAction,
	}
}
