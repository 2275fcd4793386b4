package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// Generation pipeline metrics
	generationCounter      metric.Int64Counter
	generationDuration     metric.Float64Histogram
	generationNodeCount    metric.Int64Histogram
	generationErrorCounter metric.Int64Counter

	// Simulated deployment metrics
	deployCounter      metric.Int64Counter
	deployErrorCounter metric.Int64Counter
)

// InitPipelineMetrics initializes generation and deployment metrics
func InitPipelineMetrics() error {
	meter := otel.Meter("appforge.pipeline")

	var err error

	generationCounter, err = meter.Int64Counter(
		"generation.count",
		metric.WithDescription("Number of project generation runs"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return err
	}

	generationDuration, err = meter.Float64Histogram(
		"generation.duration",
		metric.WithDescription("Duration of project generation runs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	generationNodeCount, err = meter.Int64Histogram(
		"generation.nodes",
		metric.WithDescription("File nodes produced per generation run"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return err
	}

	generationErrorCounter, err = meter.Int64Counter(
		"generation.errors",
		metric.WithDescription("Number of failed generation runs"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	deployCounter, err = meter.Int64Counter(
		"deploy.count",
		metric.WithDescription("Number of completed simulated deployments"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return err
	}

	deployErrorCounter, err = meter.Int64Counter(
		"deploy.errors",
		metric.WithDescription("Number of failed simulated deployments"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordGenerationSuccess records a completed generation run
func RecordGenerationSuccess(ctx context.Context, archetype string, duration time.Duration, nodes int) {
	attrs := metric.WithAttributes(attribute.String("archetype", archetype))
	if generationCounter != nil {
		generationCounter.Add(ctx, 1, attrs)
	}
	if generationDuration != nil {
		generationDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
	if generationNodeCount != nil {
		generationNodeCount.Record(ctx, int64(nodes), attrs)
	}
}

// RecordGenerationError records a failed generation run
func RecordGenerationError(ctx context.Context, archetype string) {
	if generationErrorCounter != nil {
		generationErrorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("archetype", archetype)))
	}
}

// RecordDeploySuccess records a completed simulated deployment
func RecordDeploySuccess(ctx context.Context) {
	if deployCounter != nil {
		deployCounter.Add(ctx, 1)
	}
}

// RecordDeployError records a failed simulated deployment
func RecordDeployError(ctx context.Context, reason string) {
	if deployErrorCounter != nil {
		deployErrorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}
