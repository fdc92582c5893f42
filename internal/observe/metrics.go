// Package observe provides application-wide observability primitives for
// lexiclash: OpenTelemetry metrics, tracing, and trace-aware structured
// logging.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still
// be scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all lexiclash metrics.
const meterName = "github.com/lexiclash/lexiclash"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// AssessmentDuration tracks end-to-end scoring latency per attempt,
	// including provider calls.
	AssessmentDuration metric.Float64Histogram

	// PronunciationScore tracks the distribution of aggregate pronunciation
	// scores across attempts.
	PronunciationScore metric.Float64Histogram

	// Assessments counts scored attempts. Use with attributes:
	//   attribute.String("rating", ...), attribute.String("interaction", ...)
	Assessments metric.Int64Counter

	// WordComparisons counts classified word pairs. Use with attribute:
	//   attribute.String("match_type", ...)
	WordComparisons metric.Int64Counter

	// ProviderRequests counts provider API calls. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...), attribute.String("status", ...)
	ProviderRequests metric.Int64Counter

	// ProviderErrors counts provider errors. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...)
	ProviderErrors metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// one provider round-trip plus in-process scoring.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// scoreBuckets defines histogram bucket boundaries for 0–100 scores.
var scoreBuckets = []float64{
	10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AssessmentDuration, err = m.Float64Histogram("lexiclash.assessment.duration",
		metric.WithDescription("End-to-end latency of scoring one spoken attempt."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PronunciationScore, err = m.Float64Histogram("lexiclash.assessment.pronunciation_score",
		metric.WithDescription("Distribution of aggregate pronunciation scores."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Assessments, err = m.Int64Counter("lexiclash.assessments",
		metric.WithDescription("Total scored attempts by rating and interaction."),
	); err != nil {
		return nil, err
	}
	if met.WordComparisons, err = m.Int64Counter("lexiclash.word.comparisons",
		metric.WithDescription("Total classified word pairs by match type."),
	); err != nil {
		return nil, err
	}
	if met.ProviderRequests, err = m.Int64Counter("lexiclash.provider.requests",
		metric.WithDescription("Total provider API requests by provider, kind, and status."),
	); err != nil {
		return nil, err
	}
	if met.ProviderErrors, err = m.Int64Counter("lexiclash.provider.errors",
		metric.WithDescription("Total provider errors by provider and kind."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordAssessment records one scored attempt with the standard attribute
// set.
func (m *Metrics) RecordAssessment(ctx context.Context, rating, interaction string) {
	m.Assessments.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("rating", rating),
			attribute.String("interaction", interaction),
		),
	)
}

// RecordWordComparison records one classified word pair.
func (m *Metrics) RecordWordComparison(ctx context.Context, matchType string) {
	m.WordComparisons.Add(ctx, 1,
		metric.WithAttributes(attribute.String("match_type", matchType)),
	)
}

// RecordProviderRequest records a provider request counter increment with the
// standard attribute set.
func (m *Metrics) RecordProviderRequest(ctx context.Context, provider, kind, status string) {
	m.ProviderRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
			attribute.String("status", status),
		),
	)
}

// RecordProviderError records a provider error counter increment.
func (m *Metrics) RecordProviderError(ctx context.Context, provider, kind string) {
	m.ProviderErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
		),
	)
}
