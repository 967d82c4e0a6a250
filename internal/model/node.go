package model

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/language"

	pkg "covtree.dev/pkg/covtree/pkg"
)

// rootName is the designated parent name reported for the tree root.
const rootName = "^"

// DefaultPackageName is the synthetic name report builders use for the
// default (unnamed) package. It maps to an empty path segment.
const DefaultPackageName = "-"

var (
	// ErrAlreadyAttached is returned when a node that already has a parent
	// is inserted into another node. Ownership is single and exclusive.
	ErrAlreadyAttached = errors.New("node is already attached to a parent")

	// ErrStructuralLeaf is returned when a structural metric is attached as
	// a leaf. Structural metrics are derived, never measured directly.
	ErrStructuralLeaf = errors.New("structural metrics cannot be attached as leaves")
)

var (
	coveredNode = NewCounter(1, 0)
	missedNode  = NewCounter(0, 1)
)

// Node is one structural element of a coverage tree. It owns its children
// and leaf attachments; the parent reference is derived at insertion time
// and is not part of the node's identity.
type Node struct {
	metric   Metric
	name     string
	children []*Node
	leaves   []Leaf
	parent   *Node
}

// NewNode creates an empty node for the given metric. The metric is fixed
// for the node's lifetime.
func NewNode(metric Metric, name string) *Node {
	return &Node{metric: metric, name: name}
}

// Metric returns the metric kind of this node.
func (n *Node) Metric() Metric {
	return n.metric
}

// Name returns the human-readable name of this node.
func (n *Node) Name() string {
	return n.name
}

// Children returns the direct children in insertion order. The slice is
// owned by the node and must not be modified by callers.
func (n *Node) Children() []*Node {
	return n.children
}

// Leaves returns the leaf attachments in insertion order.
func (n *Node) Leaves() []Leaf {
	return n.leaves
}

// IsRoot reports whether this node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// HasParent reports whether this node was inserted into another node.
func (n *Node) HasParent() bool {
	return !n.IsRoot()
}

// Parent returns the parent node, if any.
func (n *Node) Parent() (*Node, bool) {
	if n.parent == nil {
		return nil, false
	}

	return n.parent, true
}

// AddChild appends child to this node and makes this node its parent.
// Inserting a node that already has a parent is rejected: a child's
// lifetime is bound to exactly one parent.
func (n *Node) AddChild(child *Node) error {
	if child.parent != nil {
		return ErrAlreadyAttached
	}

	n.addChild(child)

	return nil
}

// addChild appends a detached child without the ownership check. Internal
// callers only pass freshly created or explicitly detached nodes.
func (n *Node) addChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// AddLeaf appends a leaf attachment. Only leaf-kind metrics may appear in
// leaves.
func (n *Node) AddLeaf(leaf Leaf) error {
	if !leaf.Metric().IsLeaf() {
		return fmt.Errorf("%w: %s", ErrStructuralLeaf, leaf.Metric())
	}

	n.leaves = append(n.leaves, leaf)

	return nil
}

// ParentName returns the name of the parent element, collapsing a run of
// same-metric ancestors into one dot-joined name (nested packages read as
// "a.b.c"). The root yields the designated root marker.
func (n *Node) ParentName() string {
	if n.parent == nil {
		return rootName
	}

	parentMetric := n.parent.metric

	var names []string
	for node := n.parent; node != nil && node.metric == parentMetric; node = node.parent {
		names = append([]string{node.name}, names...)
	}

	return strings.Join(names, ".")
}

// Path returns the source path of this node: the parent path joined with
// this node's name by '/'. The root contributes no segment, the default
// package name coalesces to an empty segment, and package names map their
// dots to directory separators.
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}

	local := n.name
	if local == DefaultPackageName {
		local = ""
	} else if n.metric == Package {
		local = strings.ReplaceAll(local, ".", "/")
	}

	parentPath := n.parent.Path()

	switch {
	case parentPath == "":
		return local
	case local == "":
		return parentPath
	default:
		return parentPath + "/" + local
	}
}

// Metrics returns the distinct metrics of this subtree - each node's own
// metric and every leaf attachment's metric - in catalog order.
func (n *Node) Metrics() []Metric {
	seen := make(map[Metric]bool)

	n.walk(func(node *Node) bool {
		seen[node.metric] = true
		for _, leaf := range node.leaves {
			seen[leaf.Metric()] = true
		}

		return true
	})

	metrics := make([]Metric, 0, len(seen))
	for metric := range seen {
		metrics = append(metrics, metric)
	}

	sortMetrics(metrics)

	return metrics
}

// Coverage aggregates the coverage of this subtree for the given metric.
//
// Leaf metrics are purely additive: the sum of every matching leaf
// attachment below this node. For a structural metric, every subtree node
// of that metric contributes one unit, covered when the node's own LINE
// coverage has at least one covered line and missed otherwise. The unit is
// always keyed off LINE coverage, whichever structural metric is queried.
func (n *Node) Coverage(searchMetric Metric) Counter {
	var total Counter

	if searchMetric.IsLeaf() {
		n.walk(func(node *Node) bool {
			for _, leaf := range node.leaves {
				total = total.Add(leaf.Coverage(searchMetric))
			}

			return true
		})

		return total
	}

	n.walk(func(node *Node) bool {
		if node.metric == searchMetric {
			if node.Coverage(Line).Covered() > 0 {
				total = total.Add(coveredNode)
			} else {
				total = total.Add(missedNode)
			}
		}

		return true
	})

	return total
}

// MetricsDistribution returns the aggregated counter for every metric of
// this subtree.
func (n *Node) MetricsDistribution() map[Metric]Counter {
	distribution := make(map[Metric]Counter)
	for _, metric := range n.Metrics() {
		distribution[metric] = n.Coverage(metric)
	}

	return distribution
}

// MetricsPercentages returns the covered percentage for every metric of
// this subtree.
func (n *Node) MetricsPercentages() map[Metric]pkg.Ratio {
	percentages := make(map[Metric]pkg.Ratio)
	for _, metric := range n.Metrics() {
		percentages[metric] = n.Coverage(metric).CoveredPercentage()
	}

	return percentages
}

// PrintCoverageFor renders the aggregated coverage percentage for the given
// metric in a human-readable, locale-aware format.
func (n *Node) PrintCoverageFor(searchMetric Metric, tag language.Tag) string {
	return n.Coverage(searchMetric).FormatCoveredPercentage(tag)
}

// ComputeDelta returns, per metric of this tree, the percentage-point
// difference to the reference tree. Metrics absent from the reference count
// as zero there.
//
// Exact subtraction can overflow once repeated combination has produced
// large denominators; such deltas degrade to a lossy float64 approximation
// instead of failing.
func (n *Node) ComputeDelta(reference *Node) map[Metric]pkg.Ratio {
	referencePercentages := reference.MetricsPercentages()

	deltas := make(map[Metric]pkg.Ratio)
	for metric, percentage := range n.MetricsPercentages() {
		deltas[metric] = safeSubtract(percentage, referencePercentages[metric])
	}

	return deltas
}

// safeSubtract computes minuend - subtrahend, falling back to a float64
// derived approximation when the exact subtraction overflows.
func safeSubtract(minuend, subtrahend pkg.Ratio) pkg.Ratio {
	diff, err := minuend.Sub(subtrahend)
	if err != nil {
		return pkg.RatioFromFloat64(minuend.Float64() - subtrahend.Float64())
	}

	return diff
}

// GetAll returns this node and every descendant whose own metric equals
// searchMetric, in document order.
//
// GetAll panics when called with a leaf or unknown metric: neither is ever
// represented as an inner node, so such a call is a programming error.
func (n *Node) GetAll(searchMetric Metric) []*Node {
	if !searchMetric.Valid() || searchMetric.IsLeaf() {
		panic(fmt.Sprintf("%s is not a structural metric of the tree", searchMetric))
	}

	var nodes []*Node

	n.walk(func(node *Node) bool {
		if node.metric == searchMetric {
			nodes = append(nodes, node)
		}

		return true
	})

	return nodes
}

// Matches reports whether this node has the given metric and name.
func (n *Node) Matches(searchMetric Metric, searchName string) bool {
	return n.metric == searchMetric && n.name == searchName
}

// MatchesNameHash reports whether this node has the given metric and a name
// or path hashing to searchHash. Names collide across packages while full
// paths do not, hence both are checked; this is a convenience affordance,
// not a strong identity.
func (n *Node) MatchesNameHash(searchMetric Metric, searchHash uint32) bool {
	if n.metric != searchMetric {
		return false
	}

	return NameHash(n.name) == searchHash || NameHash(n.Path()) == searchHash
}

// Find locates the first node with the given metric and name, depth first,
// self before children.
func (n *Node) Find(searchMetric Metric, searchName string) (*Node, bool) {
	return n.findFirst(func(node *Node) bool {
		return node.Matches(searchMetric, searchName)
	})
}

// FindByNameHash locates the first node with the given metric whose name or
// path hash equals searchHash.
func (n *Node) FindByNameHash(searchMetric Metric, searchHash uint32) (*Node, bool) {
	return n.findFirst(func(node *Node) bool {
		return node.MatchesNameHash(searchMetric, searchHash)
	})
}

// NameHash returns the 32-bit FNV-1a hash of a node name or path, the hash
// convention used by FindByNameHash.
func NameHash(name string) uint32 {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(name))

	return hasher.Sum32()
}

// SplitPackages restructures flat, dot-named packages below a module node
// into a nested package hierarchy, in place. Each dotted package child is
// replaced by a chain of synthetic package nodes, one per segment, and its
// children move onto the innermost synthetic node. Calling it again is a
// no-op because no dotted package children remain.
func (n *Node) SplitPackages() {
	if n.metric != Module {
		return
	}

	var packages, rest []*Node

	for _, child := range n.children {
		if child.metric == Package {
			packages = append(packages, child)
		} else {
			rest = append(rest, child)
		}
	}

	if len(packages) == 0 {
		return
	}

	n.children = rest

	for _, packageNode := range packages {
		packageNode.parent = nil

		segments := strings.Split(packageNode.name, ".")
		if len(segments) > 1 {
			n.insertPackage(packageNode, segments)
		} else {
			n.addChild(packageNode)
		}
	}
}

// insertPackage walks (and creates) synthetic package nodes along the
// segments and transplants packageNode's children onto the innermost one.
// The original package node is discarded.
func (n *Node) insertPackage(packageNode *Node, segments []string) {
	subPackage := n.childNamed(segments[0])

	if len(segments) == 1 {
		for _, child := range packageNode.children {
			child.parent = nil
			subPackage.addChild(child)
		}

		packageNode.children = nil

		return
	}

	subPackage.insertPackage(packageNode, segments[1:])
}

// childNamed returns the existing child with the given name or appends a
// fresh synthetic package node.
func (n *Node) childNamed(childName string) *Node {
	for _, child := range n.children {
		if child.name == childName {
			return child
		}
	}

	created := NewNode(Package, childName)
	n.addChild(created)

	return created
}

// CopyTree creates a deep, independent clone of this subtree. The copy is
// detached (it has no parent) and shares no ownership with the source.
func (n *Node) CopyTree() *Node {
	copied := NewNode(n.metric, n.name)

	type frame struct {
		source *Node
		target *Node
	}

	stack := []frame{{source: n, target: copied}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		current.target.leaves = append([]Leaf(nil), current.source.leaves...)

		for _, child := range current.source.children {
			childCopy := NewNode(child.metric, child.name)
			current.target.addChild(childCopy)
			stack = append(stack, frame{source: child, target: childCopy})
		}
	}

	return copied
}

// Equals reports deep structural equality: metric, name, children and
// leaves, recursively; parent links are derived and ignored. Cost is
// proportional to the subtree size.
func (n *Node) Equals(other *Node) bool {
	if other == nil {
		return false
	}

	type pair struct {
		left  *Node
		right *Node
	}

	stack := []pair{{left: n, right: other}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right := current.left, current.right
		if left.metric != right.metric || left.name != right.name {
			return false
		}

		if len(left.children) != len(right.children) || len(left.leaves) != len(right.leaves) {
			return false
		}

		for i, leaf := range left.leaves {
			if leaf != right.leaves[i] {
				return false
			}
		}

		for i, child := range left.children {
			stack = append(stack, pair{left: child, right: right.children[i]})
		}
	}

	return true
}

// String renders the node as "[Metric] name".
func (n *Node) String() string {
	return fmt.Sprintf("[%s] %s", n.metric, n.name)
}

// walk visits this node and all descendants in document order (self before
// children) on an explicit stack. The visitor returns false to stop early.
func (n *Node) walk(visit func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(current) {
			return
		}

		for i := len(current.children) - 1; i >= 0; i-- {
			stack = append(stack, current.children[i])
		}
	}
}

// findFirst returns the first node in document order matching the
// predicate.
func (n *Node) findFirst(matches func(*Node) bool) (*Node, bool) {
	var found *Node

	n.walk(func(node *Node) bool {
		if matches(node) {
			found = node
			return false
		}

		return true
	})

	return found, found != nil
}
