// Package model defines the coverage tree and its value types.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Metric is one kind of coverage measurement. The constant order below is
// the total order used for sorting metric sets and rendering.
type Metric int

// Available Metric values, coarsest first.
const (
	Module Metric = iota
	Group
	Package
	File
	Class
	Method
	Line
	Branch
	Instruction
)

var metricNames = map[Metric]string{
	Module:      "Module",
	Group:       "Group",
	Package:     "Package",
	File:        "File",
	Class:       "Class",
	Method:      "Method",
	Line:        "Line",
	Branch:      "Branch",
	Instruction: "Instruction",
}

// IsLeaf reports whether the metric is measured directly via counters
// attached to nodes. Structural metrics are derived by aggregating the
// subtree instead.
func (m Metric) IsLeaf() bool {
	switch m {
	case Line, Branch, Instruction:
		return true
	case Module, Group, Package, File, Class, Method:
		return false
	}

	return false
}

// Valid reports whether m is part of the catalog.
func (m Metric) Valid() bool {
	_, ok := metricNames[m]
	return ok
}

// String returns the display name of the metric.
func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Metric(%d)", int(m))
}

// MetricFromName resolves a display name back to its metric,
// case-insensitively.
func MetricFromName(name string) (Metric, error) {
	for metric, metricName := range metricNames {
		if strings.EqualFold(name, metricName) {
			return metric, nil
		}
	}

	return 0, fmt.Errorf("unknown coverage metric %q", name)
}

// sortMetrics orders a metric slice by catalog rank, in place.
func sortMetrics(metrics []Metric) {
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i] < metrics[j]
	})
}
