// Package domain orchestrates the coverage model operations behind the CLI
// commands.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"covtree.dev/pkg/covtree/internal/adapter"
	"covtree.dev/pkg/covtree/internal/controller"
	m "covtree.dev/pkg/covtree/internal/model"
)

// ShowArgs selects the tree document to display.
type ShowArgs struct {
	Tree   string
	Locale language.Tag
}

// DeltaArgs selects the tree document and the reference to compare against.
type DeltaArgs struct {
	Tree      string
	Reference string
	Locale    language.Tag
}

// SplitArgs selects the tree document whose flat packages are restructured.
// An empty Output rewrites the input document.
type SplitArgs struct {
	Tree   string
	Output string
}

// CombineArgs selects the two module documents to merge and the output.
type CombineArgs struct {
	Tree   string
	Other  string
	Output string
	Locale language.Tag
}

// Workflow exposes the coverage tree operations to the CLI layer.
type Workflow interface {
	Show(ctx context.Context, args ShowArgs) error
	Delta(ctx context.Context, args DeltaArgs) error
	Split(ctx context.Context, args SplitArgs) error
	Combine(ctx context.Context, args CombineArgs) error
}

type workflow struct {
	store adapter.TreeStore
	ui    controller.UI
}

// NewWorkflow creates a Workflow backed by the given store and UI.
func NewWorkflow(store adapter.TreeStore, ui controller.UI) Workflow {
	return &workflow{store: store, ui: ui}
}

// Show renders the metric distribution of a tree document.
func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	root, err := w.store.LoadTree(args.Tree)
	if err != nil {
		return err
	}

	slog.Debug("showing coverage distribution", "tree", args.Tree, "root", root.String())

	return w.ui.DisplayDistribution(ctx, root, args.Locale)
}

// Delta renders the percentage-point difference between a tree and a
// reference tree, per metric.
func (w *workflow) Delta(ctx context.Context, args DeltaArgs) error {
	root, reference, err := w.loadPair(ctx, args.Tree, args.Reference)
	if err != nil {
		return err
	}

	deltas := root.ComputeDelta(reference)

	return w.ui.DisplayDelta(ctx, root.Metrics(), deltas, args.Locale)
}

// Split restructures flat dot-named packages into a nested hierarchy and
// writes the result.
func (w *workflow) Split(ctx context.Context, args SplitArgs) error {
	root, err := w.store.LoadTree(args.Tree)
	if err != nil {
		return err
	}

	root.SplitPackages()

	output := args.Output
	if output == "" {
		output = args.Tree
	}

	if err := w.store.SaveTree(output, root); err != nil {
		return err
	}

	w.ui.DisplaySaved(ctx, output)

	return nil
}

// Combine merges two module documents into one report, writes it, and
// renders its distribution.
func (w *workflow) Combine(ctx context.Context, args CombineArgs) error {
	root, other, err := w.loadPair(ctx, args.Tree, args.Other)
	if err != nil {
		return err
	}

	combined, err := root.CombineWith(other)
	if err != nil {
		return fmt.Errorf("failed to combine %s with %s: %w", args.Tree, args.Other, err)
	}

	slog.Debug("combined reports", "tree", args.Tree, "other", args.Other, "result", combined.String())

	if err := w.store.SaveTree(args.Output, combined); err != nil {
		return err
	}

	w.ui.DisplaySaved(ctx, args.Output)

	return w.ui.DisplayDistribution(ctx, combined, args.Locale)
}

// loadPair loads two tree documents concurrently.
func (w *workflow) loadPair(ctx context.Context, firstPath, secondPath string) (*m.Node, *m.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var first, second *m.Node

	var group errgroup.Group

	group.Go(func() error {
		root, err := w.store.LoadTree(firstPath)
		first = root

		return err
	})

	group.Go(func() error {
		root, err := w.store.LoadTree(secondPath)
		second = root

		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return first, second, nil
}
