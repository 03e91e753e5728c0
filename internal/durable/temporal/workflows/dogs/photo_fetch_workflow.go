package dogs

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/durable/temporal/sequences"
)

const (
	// PhotoFetchWorkflowName is the public identifier for registering the workflow.
	PhotoFetchWorkflowName = "dogs.workflows.PhotoFetch"
	// PhotoFetchTaskQueue is the queue consumed by the worker processing photo fetches.
	PhotoFetchTaskQueue = "DOG_PHOTO_FETCH"
)

// PhotoFetchWorkflowInput identifies the fetch for logs.
type PhotoFetchWorkflowInput struct {
	TraceID string
}

// PhotoFetchWorkflow fetches one random dog photo.
func PhotoFetchWorkflow(ctx workflow.Context, input PhotoFetchWorkflowInput) (*domain.DogPhoto, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PhotoFetchWorkflow started", withTraceID(input.TraceID)...)
	photo, err := sequences.RunPhotoFetchSequence(ctx)
	if err != nil {
		logger.Error("PhotoFetchWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("PhotoFetchWorkflow completed", withTraceID(input.TraceID, "url", photo.URL())...)
	return photo, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
