package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

const tracerName = "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/observability"

// Service decorates the dog list port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// AddDog stores a new dog with instrumentation.
func (s *Service) AddDog(ctx context.Context, input dogtypes.AddDogInput) (*dogtypes.AddDogResult, error) {
	ctx, span := s.startSpan(ctx, "Service.AddDog",
		attribute.String("dog.name", input.Name),
		attribute.Bool("dog.has_image", input.ImageURL != ""),
	)
	defer span.End()

	s.logInfo(ctx, "adding dog", slog.String("dog.name", input.Name), slog.String("dog.breed", input.Breed))
	result, err := s.inner.AddDog(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add dog", slog.String("dog.name", input.Name))
	}
	span.SetAttributes(attribute.Bool("dog.added", result.Added))
	if result.Added {
		s.metrics.recordAdded(ctx)
		s.logInfo(ctx, "dog added", slog.String("dog.name", input.Name))
	} else {
		s.metrics.recordDuplicate(ctx)
		s.logInfo(ctx, "dog name already listed, add ignored", slog.String("dog.name", input.Name))
	}
	return result, nil
}

// RemoveDog deletes a dog by name.
func (s *Service) RemoveDog(ctx context.Context, input dogtypes.DogIdentifier) (bool, error) {
	ctx, span := s.startSpan(ctx, "Service.RemoveDog", attribute.String("dog.name", input.Name))
	defer span.End()

	s.logInfo(ctx, "removing dog", slog.String("dog.name", input.Name))
	removed, err := s.inner.RemoveDog(ctx, input)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to remove dog", slog.String("dog.name", input.Name))
	}
	span.SetAttributes(attribute.Bool("dog.removed", removed))
	if removed {
		s.metrics.recordRemoved(ctx)
	} else {
		s.logInfo(ctx, "dog not listed, remove ignored", slog.String("dog.name", input.Name))
	}
	return removed, nil
}

// ToggleFavorite flips the favorite flag of a dog.
func (s *Service) ToggleFavorite(ctx context.Context, input dogtypes.DogIdentifier) (*dogtypes.DogProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ToggleFavorite", attribute.String("dog.name", input.Name))
	defer span.End()

	result, err := s.inner.ToggleFavorite(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle favorite", slog.String("dog.name", input.Name))
	}
	span.SetAttributes(attribute.Bool("dog.favorite", result.Entity.IsFavorite))
	s.metrics.recordToggled(ctx, result.Entity.IsFavorite)
	s.logInfo(ctx, "favorite toggled", slog.String("dog.name", input.Name), slog.Bool("dog.favorite", result.Entity.IsFavorite))
	return result, nil
}

// SetSearchText stores the list filter.
func (s *Service) SetSearchText(ctx context.Context, input dogtypes.SetSearchTextInput) error {
	ctx, span := s.startSpan(ctx, "Service.SetSearchText", attribute.Int("dog.search.length", len(input.Text)))
	defer span.End()

	if err := s.inner.SetSearchText(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to set search text")
	}
	return nil
}

// SearchText returns the list filter.
func (s *Service) SearchText(ctx context.Context) (string, error) {
	ctx, span := s.startSpan(ctx, "Service.SearchText")
	defer span.End()

	text, err := s.inner.SearchText(ctx)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to read search text")
	}
	return text, nil
}

// ListDogs snapshots the filtered list.
func (s *Service) ListDogs(ctx context.Context) (*dogtypes.DogListView, error) {
	ctx, span := s.startSpan(ctx, "Service.ListDogs")
	defer span.End()

	view, err := s.inner.ListDogs(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list dogs")
	}
	span.SetAttributes(
		attribute.Int("dog.result.count", len(view.Dogs)),
		attribute.Int("dog.total", view.Total),
	)
	s.logInfo(ctx, "listed dogs", slog.Int("count", len(view.Dogs)), slog.Int("total", view.Total))
	return view, nil
}

// FindByName resolves one dog for the details screen.
func (s *Service) FindByName(ctx context.Context, query dogtypes.DetailsQuery) (*dogtypes.DogProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FindByName", attribute.String("dog.name", query.Name))
	defer span.End()

	result, err := s.inner.FindByName(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve dog", slog.String("dog.name", query.Name))
	}
	if query.PayloadMismatch(result) {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "navigation payload differs from stored dog",
			slog.String("dog.name", query.Name),
			slog.String("payload.breed", query.Breed),
			slog.String("stored.breed", result.Entity.Breed),
		)
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	return recordError(ctx, s.logger, span, err, msg, attrs...)
}

func recordError(ctx context.Context, logger *slog.Logger, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	dogsAdded      metric.Int64Counter
	dogsDuplicate  metric.Int64Counter
	dogsRemoved    metric.Int64Counter
	favoritesFlips metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	dogsAdded, _ := m.Int64Counter("dogs.service.added", metric.WithDescription("Number of dogs added"))
	dogsDuplicate, _ := m.Int64Counter("dogs.service.duplicate", metric.WithDescription("Number of adds ignored because the name was taken"))
	dogsRemoved, _ := m.Int64Counter("dogs.service.removed", metric.WithDescription("Number of dogs removed"))
	favoritesFlips, _ := m.Int64Counter("dogs.service.favorite_toggled", metric.WithDescription("Number of favorite toggles"))
	return serviceMetrics{
		dogsAdded:      dogsAdded,
		dogsDuplicate:  dogsDuplicate,
		dogsRemoved:    dogsRemoved,
		favoritesFlips: favoritesFlips,
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	addCounter(ctx, m.dogsAdded, 1)
}

func (m serviceMetrics) recordDuplicate(ctx context.Context) {
	addCounter(ctx, m.dogsDuplicate, 1)
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	addCounter(ctx, m.dogsRemoved, 1)
}

func (m serviceMetrics) recordToggled(ctx context.Context, favorite bool) {
	addCounter(ctx, m.favoritesFlips, 1, attribute.Bool("dog.favorite", favorite))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
