package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetric_CatalogOrder(t *testing.T) {
	ordered := []Metric{Module, Group, Package, File, Class, Method, Line, Branch, Instruction}

	for i := 1; i < len(ordered); i++ {
		require.Less(t, int(ordered[i-1]), int(ordered[i]),
			"%s must sort before %s", ordered[i-1], ordered[i])
	}
}

func TestMetric_LeafClassification(t *testing.T) {
	for _, metric := range []Metric{Line, Branch, Instruction} {
		require.True(t, metric.IsLeaf(), "%s is measured directly", metric)
	}

	for _, metric := range []Metric{Module, Group, Package, File, Class, Method} {
		require.False(t, metric.IsLeaf(), "%s is aggregated", metric)
	}
}

func TestMetric_Valid(t *testing.T) {
	require.True(t, Instruction.Valid())
	require.False(t, Metric(42).Valid())
}

func TestMetricFromName(t *testing.T) {
	metric, err := MetricFromName("line")
	require.NoError(t, err)
	require.Equal(t, Line, metric)

	metric, err = MetricFromName("PACKAGE")
	require.NoError(t, err)
	require.Equal(t, Package, metric)

	_, err = MetricFromName("loops")
	require.Error(t, err)
}

func TestMetric_StringRoundTrip(t *testing.T) {
	for _, metric := range []Metric{Module, Group, Package, File, Class, Method, Line, Branch, Instruction} {
		parsed, err := MetricFromName(metric.String())
		require.NoError(t, err)
		require.Equal(t, metric, parsed)
	}
}

func TestSortMetrics(t *testing.T) {
	metrics := []Metric{Branch, Module, Line, Class}
	sortMetrics(metrics)

	require.Equal(t, []Metric{Module, Class, Line, Branch}, metrics)
}
