// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/yd/internal/browse"
	"github.com/tfctl/yd/internal/change"
	"github.com/tfctl/yd/internal/config"
	"github.com/tfctl/yd/internal/differ"
	"github.com/tfctl/yd/internal/filters"
	"github.com/tfctl/yd/internal/focus"
	"github.com/tfctl/yd/internal/log"
	"github.com/tfctl/yd/internal/node"
	"github.com/tfctl/yd/internal/normalize"
	"github.com/tfctl/yd/internal/render"
	"github.com/tfctl/yd/internal/source"
)

// ErrDifferent is returned when --exit-code is set and the documents differ.
// It carries no message of its own; main maps it to exit status 1.
var ErrDifferent = errors.New("documents differ")

// loader is replaced in tests.
var loader = source.New

func diffAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("expected LEFT and RIGHT documents, got %d argument(s)", len(args))
	}

	m := GetMeta(cmd)
	log.Debugf("args %v, config %q, starting dir %s", m.Args, m.Config.Source, m.StartingDir)

	l := loader()
	if r := cmd.Root().Reader; r != nil {
		l.Stdin = r
	}
	left, right, err := l.LoadPair(ctx, resolveRef(m.StartingDir, args[0]), resolveRef(m.StartingDir, args[1]))
	if err != nil {
		return err
	}

	res, err := compareDocuments(left, right, cmd.String("focus"), normalizeOptions(cmd))
	if err != nil {
		return err
	}
	res.Changes = filters.Apply(res.Changes, cmd.String("filter"))
	log.Debugf("%s vs %s: %s", left.Name(), right.Name(), change.Count(res.Changes))

	if cmd.Bool("interactive") {
		if err := browse.Run(ctx, left.Name()+" ↔ "+right.Name(), res.Changes); err != nil {
			return err
		}
	} else {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		if err := render.Render(w, res, renderOptions(cmd, w)); err != nil {
			return err
		}
	}

	if cmd.Bool("exit-code") && len(res.Changes) > 0 {
		return ErrDifferent
	}
	return nil
}

// resolveRef anchors a relative file path at dir, the working directory yd
// started in. Stdin and S3 references pass through.
func resolveRef(dir, raw string) string {
	if dir == "" || raw == "-" || strings.HasPrefix(raw, "s3://") || filepath.IsAbs(raw) {
		return raw
	}
	return filepath.Join(dir, raw)
}

// normalizeOptions maps --no-sort and --sort-keys, falling back to the
// sort_keys config list.
func normalizeOptions(cmd *cli.Command) []normalize.Option {
	if cmd.Bool("no-sort") {
		return []normalize.Option{normalize.WithoutSmartSort()}
	}

	var keys []string
	if s := cmd.String("sort-keys"); s != "" {
		for k := range strings.SplitSeq(s, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	} else if cfg, err := config.GetStringSlice("sort_keys"); err == nil {
		keys = cfg
	}

	if len(keys) == 0 {
		return nil
	}
	return []normalize.Option{normalize.WithSortKeys(keys)}
}

func renderOptions(cmd *cli.Command, w io.Writer) render.Options {
	mode, _ := render.ParseMode(cmd.String("output"))
	switch {
	case cmd.Bool("counts"):
		mode = render.Counts
	case cmd.Bool("paths-only"):
		mode = render.Paths
	}

	out, _ := w.(*os.File)
	return render.Options{
		Mode:          mode,
		Color:         render.ColorEnabled(cmd.String("color"), out),
		EmbeddedLines: cmd.Bool("embedded-lines"),
		SortOutput:    cmd.Bool("sort-output"),
	}
}

// compareDocuments parses both sides and diffs them. Streams holding more
// than one document are compared document by document, with each change path
// rooted at the document's index.
func compareDocuments(left, right *source.Document, focusPath string, opts []normalize.Option) (render.Result, error) {
	ldocs, err := parseDocument("left", left)
	if err != nil {
		return render.Result{}, err
	}
	rdocs, err := parseDocument("right", right)
	if err != nil {
		return render.Result{}, err
	}

	d := differ.New(opts...)
	res := render.Result{Normalize: opts}

	if len(ldocs) <= 1 && len(rdocs) <= 1 {
		l, r, err := focusPair(first(ldocs), first(rdocs), focusPath)
		if err != nil {
			return render.Result{}, err
		}
		res.Left = normalize.Normalize(l, opts...)
		res.Right = normalize.Normalize(r, opts...)
		res.Changes = d.Diff(res.Left, res.Right)
		return res, nil
	}

	n := max(len(ldocs), len(rdocs))
	lnorm := make([]*node.Node, n)
	rnorm := make([]*node.Node, n)
	matched := false
	for i := range n {
		l, r, err := focusPair(at(ldocs, i), at(rdocs, i), focusPath)
		if errors.Is(err, focus.ErrNoMatch) {
			continue
		}
		if err != nil {
			return render.Result{}, err
		}
		matched = true

		lnorm[i] = normalize.Normalize(l, opts...)
		rnorm[i] = normalize.Normalize(r, opts...)
		res.Changes = append(res.Changes, d.DiffAt(change.NewPath().Index(i), lnorm[i], rnorm[i])...)
	}
	if !matched {
		return render.Result{}, fmt.Errorf("%w: %s", focus.ErrNoMatch, focusPath)
	}

	res.Left = node.NewSequence(lnorm...)
	res.Right = node.NewSequence(rnorm...)
	return res, nil
}

func parseDocument(side string, doc *source.Document) ([]*node.Node, error) {
	docs, err := node.ParseAll(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document %s: %w", side, doc.Name(), err)
	}
	return docs, nil
}

func focusPair(l, r *node.Node, path string) (*node.Node, *node.Node, error) {
	if path == "" {
		return l, r, nil
	}
	return focus.Pair(l, r, path)
}

// first returns the only document of a stream, or null for an empty one.
func first(docs []*node.Node) *node.Node {
	if len(docs) == 0 {
		return node.Null()
	}
	return docs[0]
}

func at(docs []*node.Node, i int) *node.Node {
	if i < len(docs) {
		return docs[i]
	}
	return nil
}
