// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tfctl/yd/internal/command"
	"github.com/tfctl/yd/internal/config"
	"github.com/tfctl/yd/internal/log"
	"github.com/tfctl/yd/internal/version"
)

// Exit statuses.
const (
	exitOK        = 0
	exitDifferent = 1
	exitError     = 2
)

// valueFlags take the following argument as their value unless written as
// --flag=value.
var valueFlags = map[string]bool{
	"--color":     true,
	"--filter":    true,
	"--focus":     true,
	"--output":    true,
	"--sort-keys": true,
}

// flagAliases maps short flags to their long names.
var flagAliases = map[string]string{
	"-c": "--counts",
	"-e": "--exit-code",
	"-f": "--focus",
	"-i": "--interactive",
	"-o": "--output",
	"-p": "--paths-only",
	"-s": "--sort-output",
	"-v": "--version",
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--" {
			break
		}
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no arguments are provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @set references and config defaults, then drops
// all but the last occurrence of each flag so the command line overrides
// config.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	args = injectConfigSet(args, "defaults", 1)
	args = deduplicateFlags(args)
	log.Debugf("args after processing: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string, stderr io.Writer) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitError
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrDifferent) {
			return exitDifferent
		}
		fmt.Fprintln(stderr, err)
		log.Debugf("app run err: err=%v", err)
		return exitError
	}

	return exitOK
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return exitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip argument processing and let the CLI
	// handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}
	if !helpFound {
		args = processCommandArgs(args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return initAndRunApp(ctx, args, os.Stderr)
}

// processSetOnly replaces the first @name argument with the entries of the
// sets.name config list.
func processSetOnly(args []string) []string {
	for i := 1; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "@") || len(a) == 1 {
			continue
		}
		entries, err := config.GetStringSlice("sets." + a[1:])
		if err != nil {
			log.Warnf("no argument set %q in config", a[1:])
		}
		rest := append([]string{}, args[i+1:]...)
		return append(insertEntries(args[:i], entries, i), rest...)
	}
	return args
}

// injectConfigSet inserts the entries of the config list at key into args
// at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil {
		return args
	}
	return insertEntries(args, entries, insertIdx)
}

// insertEntries splits each entry on whitespace and inserts the fields at
// insertIdx. args is not modified.
func insertEntries(args []string, entries []string, insertIdx int) []string {
	if insertIdx > len(args) {
		insertIdx = len(args)
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, together
// with its value. Short aliases count as their long flag. Arguments after
// "--" are left alone.
func deduplicateFlags(args []string) []string {
	type span struct {
		name       string
		start, end int
	}

	var spans []span
	last := map[string]int{}
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			continue
		}

		name, _, inline := strings.Cut(a, "=")
		if long, ok := flagAliases[name]; ok {
			name = long
		}

		end := i
		if !inline && valueFlags[name] && i+1 < len(args) {
			end = i + 1
		}
		spans = append(spans, span{name: name, start: i, end: end})
		last[name] = i
		i = end
	}

	drop := map[int]bool{}
	for _, s := range spans {
		if last[s.name] == s.start {
			continue
		}
		for j := s.start; j <= s.end; j++ {
			drop[j] = true
		}
	}

	out := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out
}
