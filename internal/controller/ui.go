// Package controller provides output adapters for displaying coverage
// results.
package controller

import (
	"context"

	"golang.org/x/text/language"

	m "covtree.dev/pkg/covtree/internal/model"
	pkg "covtree.dev/pkg/covtree/pkg"
)

// UI defines the interface for displaying coverage queries.
// Implementations can use different output methods (simple text, files).
type UI interface {
	// DisplayDistribution renders the aggregated counter and percentage for
	// every metric of the tree.
	DisplayDistribution(ctx context.Context, root *m.Node, tag language.Tag) error

	// DisplayDelta renders per-metric percentage-point differences in
	// catalog order.
	DisplayDelta(ctx context.Context, metrics []m.Metric, deltas map[m.Metric]pkg.Ratio, tag language.Tag) error

	// DisplaySaved confirms that a transformed tree was written.
	DisplaySaved(ctx context.Context, path string)
}
