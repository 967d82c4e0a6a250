package model

import "fmt"

// Leaf is a (metric, counter) pair attached directly to a structural node.
// It carries the terminal measurement data for that node, e.g. the line and
// branch counters of a class.
type Leaf struct {
	metric  Metric
	counter Counter
}

// NewLeaf creates a leaf attachment for the given leaf-kind metric.
func NewLeaf(metric Metric, counter Counter) Leaf {
	return Leaf{metric: metric, counter: counter}
}

// Metric returns the metric this leaf measures.
func (l Leaf) Metric() Metric {
	return l.metric
}

// Counter returns the measured counter.
func (l Leaf) Counter() Counter {
	return l.counter
}

// Coverage returns the counter if the leaf measures searchMetric, otherwise
// the zero counter.
func (l Leaf) Coverage(searchMetric Metric) Counter {
	if l.metric == searchMetric {
		return l.counter
	}

	return Counter{}
}

// String renders the leaf as "[Line] 8/10".
func (l Leaf) String() string {
	return fmt.Sprintf("[%s] %d/%d", l.metric, l.counter.Covered(), l.counter.Total())
}
