package model

import (
	"errors"
	"fmt"
)

// combinedReportName names the synthetic grouping node that wraps two
// modules with differing names.
const combinedReportName = "Combined Report"

var (
	// ErrCombineArgument is returned when the node passed to CombineWith is
	// not a module. The argument is unusable, the receiver is fine.
	ErrCombineArgument = errors.New("node to combine with is not a module")

	// ErrCombineReceiver is returned when CombineWith is invoked on a
	// non-module node. The receiver is in the wrong state for combining.
	ErrCombineReceiver = errors.New("cannot combine on a non-module node")
)

// MergeError reports that two reports describe incompatible underlying
// source entities at the identified node.
type MergeError struct {
	NodeMetric Metric
	NodeName   string
	Detail     string
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	return fmt.Sprintf("cannot merge %s %q: %s", e.NodeMetric, e.NodeName, e.Detail)
}

// CombineWith merges two module trees into a new tree; neither input is
// mutated.
//
// Same-named modules are reconciled structurally: the result starts as a
// clone of this tree and the other tree's children are merged into it.
// Differently-named modules are wrapped as independent clones below one
// synthetic group node. Reconciliation failures abort the combine and leave
// both inputs untouched.
func (n *Node) CombineWith(other *Node) (*Node, error) {
	if other.metric != Module {
		return nil, ErrCombineArgument
	}

	if n.metric != Module {
		return nil, ErrCombineReceiver
	}

	if n.name == other.name {
		combined := n.CopyTree()
		if err := combined.combineChildren(other); err != nil {
			return nil, err
		}

		return combined, nil
	}

	combined := NewNode(Group, combinedReportName)
	combined.addChild(n.CopyTree())
	combined.addChild(other.CopyTree())

	return combined, nil
}

// combineChildren reconciles this subtree (a fresh clone) against the
// structurally corresponding nodes of other, breadth first on an explicit
// queue.
//
// A node that already carries leaves is a terminal: if other ends there
// too, the leaf counters are reconciled; if other still has structure
// below, the local leaves are discarded and other's structure wins.
func (n *Node) combineChildren(other *Node) error {
	type pair struct {
		mine  *Node
		other *Node
	}

	queue := []pair{{mine: n, other: other}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.mine.leaves) > 0 {
			if len(current.other.children) == 0 {
				if err := current.mine.mergeLeaves(current.other); err != nil {
					return err
				}

				continue
			}

			current.mine.leaves = nil
		}

		for _, otherChild := range current.other.children {
			if existing := current.mine.childByName(otherChild.name); existing != nil {
				queue = append(queue, pair{mine: existing, other: otherChild})
			} else {
				current.mine.addChild(otherChild.CopyTree())
			}
		}
	}

	return nil
}

// mergeLeaves reconciles the leaf counters of two corresponding terminal
// nodes. Both sides must expose the same metrics with the same totals;
// anything else means the reports describe different source trees. Per
// metric, the counter with the higher covered count wins.
func (n *Node) mergeLeaves(other *Node) error {
	mine := n.MetricsDistribution()
	theirs := other.MetricsDistribution()

	if !sameMetricSet(mine, theirs) {
		return &MergeError{
			NodeMetric: n.metric,
			NodeName:   n.name,
			Detail:     "reports to combine have mismatching leaf metrics",
		}
	}

	merged := make([]Leaf, 0, len(n.leaves))

	for _, metric := range n.Metrics() {
		mineCounter, otherCounter := mine[metric], theirs[metric]

		if mineCounter.Total() != otherCounter.Total() {
			return &MergeError{
				NodeMetric: n.metric,
				NodeName:   n.name,
				Detail:     fmt.Sprintf("reports to combine have a mismatch of total %s coverage", metric),
			}
		}

		if !metric.IsLeaf() {
			continue
		}

		best := mineCounter
		if otherCounter.Covered() > mineCounter.Covered() {
			best = otherCounter
		}

		merged = append(merged, NewLeaf(metric, best))
	}

	n.leaves = merged

	return nil
}

// childByName returns the first direct child with the given name.
func (n *Node) childByName(childName string) *Node {
	for _, child := range n.children {
		if child.name == childName {
			return child
		}
	}

	return nil
}

func sameMetricSet(a, b map[Metric]Counter) bool {
	if len(a) != len(b) {
		return false
	}

	for metric := range a {
		if _, ok := b[metric]; !ok {
			return false
		}
	}

	return true
}
