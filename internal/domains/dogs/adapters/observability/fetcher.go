package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// Fetcher decorates a photo fetcher with a span, a log line per failure, and counters.
type Fetcher struct {
	inner   ports.PhotoFetcher
	tracer  trace.Tracer
	logger  *slog.Logger
	fetched metric.Int64Counter
	failed  metric.Int64Counter
	latency metric.Float64Histogram
}

// FetcherOption configures the fetcher decorator.
type FetcherOption func(*Fetcher)

// WithFetcherLogger injects a slog logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithFetcherTracer injects a tracer implementation.
func WithFetcherTracer(tr trace.Tracer) FetcherOption {
	return func(f *Fetcher) {
		f.tracer = tr
	}
}

// WithFetcherMeter creates the fetch counters from m.
func WithFetcherMeter(m metric.Meter) FetcherOption {
	return func(f *Fetcher) {
		if m == nil {
			return
		}
		f.fetched, _ = m.Int64Counter("dogs.photos.fetched", metric.WithDescription("Successful random photo fetches"))
		f.failed, _ = m.Int64Counter("dogs.photos.failed", metric.WithDescription("Failed random photo fetches"))
		f.latency, _ = m.Float64Histogram("dogs.photos.duration", metric.WithUnit("s"), metric.WithDescription("Random photo fetch latency"))
	}
}

// NewFetcher wraps inner with instrumentation.
func NewFetcher(inner ports.PhotoFetcher, opts ...FetcherOption) ports.PhotoFetcher {
	f := &Fetcher{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.tracer == nil {
		f.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if f.logger == nil {
		f.logger = defaultLogger()
	}
	return f
}

// GetRandomImage fetches a photo with instrumentation.
func (f *Fetcher) GetRandomImage(ctx context.Context) (*domain.DogPhoto, error) {
	ctx, span := f.tracer.Start(ctx, "PhotoFetcher.GetRandomImage")
	defer span.End()

	started := time.Now()
	photo, err := f.inner.GetRandomImage(ctx)
	if f.latency != nil {
		f.latency.Record(ctx, time.Since(started).Seconds())
	}
	if err != nil {
		addCounter(ctx, f.failed, 1)
		return nil, recordError(ctx, f.logger, span, err, "dog photo fetch failed")
	}
	addCounter(ctx, f.fetched, 1)
	span.SetAttributes(attribute.String("dog.photo.url", photo.URL()))
	return photo, nil
}

var _ ports.PhotoFetcher = (*Fetcher)(nil)
