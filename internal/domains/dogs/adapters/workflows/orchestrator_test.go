package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/addflow"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	dogworkflows "github.com/Apurer/go-gin-doglist/internal/durable/temporal/workflows/dogs"
)

func fixedID(o *TemporalPhotoWorkflows) {
	o.newID = func() string { return "fixed" }
}

func TestTemporalPhotoWorkflows_ReturnsWorkflowResult(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.ID == "dog-photo-fetch-fixed" &&
			opts.TaskQueue == dogworkflows.PhotoFetchTaskQueue &&
			opts.WorkflowExecutionTimeout == DefaultExecutionTimeout &&
			opts.WorkflowIDReusePolicy == enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}), dogworkflows.PhotoFetchWorkflowName, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		photo := args.Get(1).(*domain.DogPhoto)
		photo.Message = "https://images.dog.ceo/breeds/akita/1.jpg"
		photo.Status = "success"
	}).Return(nil)

	o := NewTemporalPhotoWorkflows(c)
	fixedID(o)
	photo, err := o.GetRandomImage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://images.dog.ceo/breeds/akita/1.jpg", photo.URL())
	c.AssertExpectations(t)
	run.AssertExpectations(t)
	c.AssertNotCalled(t, "CancelWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemporalPhotoWorkflows_AppliesConfiguredTimeout(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.WorkflowExecutionTimeout == 7*time.Second
	}), mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(nil)

	_, err := NewTemporalPhotoWorkflows(c, WithExecutionTimeout(7*time.Second), WithExecutionTimeout(0)).GetRandomImage(context.Background())
	require.NoError(t, err)
	c.AssertExpectations(t)
}

// blockingRun returns a run whose Get signals started and then waits for the caller's context.
func blockingRun(id string, started chan<- struct{}) *mocks.WorkflowRun {
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		started <- struct{}{}
		<-args.Get(0).(context.Context).Done()
	}).Return(context.Canceled)
	run.On("GetID").Return(id)
	run.On("GetRunID").Return(id + "-run")
	return run
}

func TestTemporalPhotoWorkflows_CancelsSupersededWorkflows(t *testing.T) {
	c := &mocks.Client{}
	started := make(chan struct{}, 2)
	first, second := blockingRun("first", started), blockingRun("second", started)
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(first, nil).Once()
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(second, nil).Once()
	c.On("CancelWorkflow", mock.Anything, "first", "first-run").Return(nil).Once()
	c.On("CancelWorkflow", mock.Anything, "second", "second-run").
		Return(serviceerror.NewNotFound("workflow already completed")).Once()

	flow := addflow.New(NewTemporalPhotoWorkflows(c), application.NewService())
	flow.Start(context.Background())
	<-started
	flow.Retry(context.Background())
	<-started
	flow.Close()

	c.AssertNumberOfCalls(t, "ExecuteWorkflow", 2)
	c.AssertNumberOfCalls(t, "CancelWorkflow", 2)
	c.AssertExpectations(t)
}

func TestTemporalPhotoWorkflows_WrapsFailuresAsNetworkErrors(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(errors.New("activity failed"))

	_, err := NewTemporalPhotoWorkflows(c).GetRandomImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)

	down := &mocks.Client{}
	down.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	_, err = NewTemporalPhotoWorkflows(down).GetRandomImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
}

type stubFetcher struct{ photo *domain.DogPhoto }

func (s stubFetcher) GetRandomImage(context.Context) (*domain.DogPhoto, error) { return s.photo, nil }

func TestInlinePhotoWorkflows_Delegates(t *testing.T) {
	photo := &domain.DogPhoto{Message: "https://images.dog.ceo/x.jpg", Status: "success"}
	got, err := NewInlinePhotoWorkflows(stubFetcher{photo: photo}).GetRandomImage(context.Background())
	require.NoError(t, err)
	require.Same(t, photo, got)

	_, err = NewInlinePhotoWorkflows(nil).GetRandomImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
}
