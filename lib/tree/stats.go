package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xtree/tree"
)

type treeStats struct {
	attrs         metric.MeasurementOption
	rotationCount metric.Int64Counter
	fixupCount    metric.Int64Counter
	elementCount  metric.Int64UpDownCounter
}

func (stats *treeStats) IncreaseRotationCount(dir RBDirection) {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(
		context.Background(),
		1,
		stats.attrs,
		metric.WithAttributes(attribute.String("xtree.rotation.direction", dir.String())),
	)
}

func (stats *treeStats) IncreaseFixupCount() {
	if stats == nil {
		return
	}
	stats.fixupCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) RecordElementCount(delta int64) {
	if stats == nil {
		return
	}
	stats.elementCount.Add(context.Background(), delta, stats.attrs)
}

func newTreeStats(name, policy string) *treeStats {
	meterName := fmt.Sprintf("%s/%s", TreeStatsName, name)
	meter := otel.Meter(meterName)
	return &treeStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xtree.name", name),
			attribute.String("xtree.policy", policy),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.rotation.count",
			metric.WithDescription("The number of rotations applied by the tree."),
		)),
		fixupCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.fixup.count",
			metric.WithDescription("The number of rebalance steps visited by the tree fix-up."),
		)),
		elementCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.element.count",
			metric.WithDescription("The number of elements in the tree."),
		)),
	}
}
