package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
	dogworkflows "github.com/Apurer/go-gin-doglist/internal/durable/temporal/workflows/dogs"
)

var (
	_ ports.PhotoFetcher = (*TemporalPhotoWorkflows)(nil)
	_ ports.PhotoFetcher = (*InlinePhotoWorkflows)(nil)
)

// DefaultExecutionTimeout bounds a photo fetch workflow when no timeout is configured.
const DefaultExecutionTimeout = 20 * time.Second

// cancelTimeout bounds the cancel request sent for an abandoned workflow.
const cancelTimeout = 5 * time.Second

// TemporalPhotoWorkflows runs each photo fetch as a workflow on a Temporal cluster.
type TemporalPhotoWorkflows struct {
	client           client.Client
	taskQueue        string
	executionTimeout time.Duration
	logger           *slog.Logger
	newID            func() string
}

// Option configures the Temporal orchestrator.
type Option func(*TemporalPhotoWorkflows)

// WithExecutionTimeout caps how long a single fetch workflow may run, queueing included.
func WithExecutionTimeout(timeout time.Duration) Option {
	return func(o *TemporalPhotoWorkflows) {
		if timeout > 0 {
			o.executionTimeout = timeout
		}
	}
}

// WithLogger injects the logger used for cancellation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *TemporalPhotoWorkflows) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewTemporalPhotoWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPhotoWorkflows(c client.Client, opts ...Option) *TemporalPhotoWorkflows {
	o := &TemporalPhotoWorkflows{
		client:           c,
		taskQueue:        dogworkflows.PhotoFetchTaskQueue,
		executionTimeout: DefaultExecutionTimeout,
		logger:           slog.Default(),
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// GetRandomImage starts the photo fetch workflow and waits for its result. When ctx ends first
// the workflow is cancelled so a superseded fetch does not keep running.
func (o *TemporalPhotoWorkflows) GetRandomImage(ctx context.Context) (*domain.DogPhoto, error) {
	if o == nil || o.client == nil {
		return nil, fmt.Errorf("%w: temporal photo workflows not configured", domain.ErrNetwork)
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("dog-photo-fetch-%s", o.newID()),
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.executionTimeout,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		dogworkflows.PhotoFetchWorkflowName,
		dogworkflows.PhotoFetchWorkflowInput{TraceID: traceID},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	var photo domain.DogPhoto
	if err := run.Get(ctx, &photo); err != nil {
		if ctx.Err() != nil {
			o.cancel(ctx, run)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	return &photo, nil
}

func (o *TemporalPhotoWorkflows) cancel(ctx context.Context, run client.WorkflowRun) {
	cancelCtx, done := context.WithTimeout(context.WithoutCancel(ctx), cancelTimeout)
	defer done()
	err := o.client.CancelWorkflow(cancelCtx, run.GetID(), run.GetRunID())
	var notFound *serviceerror.NotFound
	if err != nil && !errors.As(err, &notFound) {
		o.logger.WarnContext(ctx, "cancel superseded photo workflow failed",
			slog.String("workflow.id", run.GetID()),
			slog.String("error", err.Error()),
		)
	}
}

// InlinePhotoWorkflows calls the fetcher directly without Temporal, useful for tests or dev fallbacks.
type InlinePhotoWorkflows struct {
	fetcher ports.PhotoFetcher
}

// NewInlinePhotoWorkflows wraps a fetcher for synchronous execution.
func NewInlinePhotoWorkflows(fetcher ports.PhotoFetcher) *InlinePhotoWorkflows {
	return &InlinePhotoWorkflows{fetcher: fetcher}
}

// GetRandomImage delegates to the wrapped fetcher.
func (o *InlinePhotoWorkflows) GetRandomImage(ctx context.Context) (*domain.DogPhoto, error) {
	if o == nil || o.fetcher == nil {
		return nil, fmt.Errorf("%w: inline photo workflows not configured", domain.ErrNetwork)
	}
	return o.fetcher.GetRandomImage(ctx)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.HasTraceID() {
		return ""
	}
	return spanCtx.TraceID().String()
}
