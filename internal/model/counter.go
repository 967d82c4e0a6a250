package model

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	pkg "covtree.dev/pkg/covtree/pkg"
)

// Counter is an immutable covered/missed occurrence pair for one metric at
// one point in the tree. The zero value is the identity for Add.
type Counter struct {
	covered int64
	missed  int64
}

// NewCounter creates a counter from non-negative covered and missed counts.
// Negative inputs are clamped to zero.
func NewCounter(covered, missed int64) Counter {
	return Counter{covered: clampNonNegative(covered), missed: clampNonNegative(missed)}
}

// Covered returns the number of covered occurrences.
func (c Counter) Covered() int64 {
	return c.covered
}

// Missed returns the number of missed occurrences.
func (c Counter) Missed() int64 {
	return c.missed
}

// Total returns covered plus missed.
func (c Counter) Total() int64 {
	return saturatingAdd(c.covered, c.missed)
}

// Add returns the component-wise sum of both counters. Sums saturate at the
// int64 maximum instead of wrapping.
func (c Counter) Add(other Counter) Counter {
	return Counter{
		covered: saturatingAdd(c.covered, other.covered),
		missed:  saturatingAdd(c.missed, other.missed),
	}
}

// CoveredPercentage returns covered/total as an exact ratio.
//
// An empty counter (total zero) yields the zero ratio; "nothing measured"
// reads as 0% rather than failing.
func (c Counter) CoveredPercentage() pkg.Ratio {
	total := c.Total()
	if total == 0 {
		return pkg.Ratio{}
	}

	return pkg.NewRatio(c.covered, total)
}

// FormatCoveredPercentage renders the covered percentage for the given
// locale, e.g. "80.00%" for English and "80,00%" for German.
func (c Counter) FormatCoveredPercentage(tag language.Tag) string {
	printer := message.NewPrinter(tag)

	return printer.Sprintf("%.2f%%", c.CoveredPercentage().Float64()*100)
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}

	return v
}

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	if a > 0 && b > 0 && sum < 0 {
		return math.MaxInt64
	}

	return sum
}
