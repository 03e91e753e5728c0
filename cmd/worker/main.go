package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-doglist/internal/app/api"
	dogsobs "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/observability"
	dogactivities "github.com/Apurer/go-gin-doglist/internal/durable/temporal/activities/dogs"
	dogworkflows "github.com/Apurer/go-gin-doglist/internal/durable/temporal/workflows/dogs"
	platformobservability "github.com/Apurer/go-gin-doglist/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "doglist-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	directFetcher, err := api.BuildPhotoFetcher(cfg, instruments)
	if err != nil {
		logger.Error("failed to configure dog photo fetcher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	photoFetcher := dogsobs.NewFetcher(
		directFetcher,
		dogsobs.WithFetcherLogger(logger),
		dogsobs.WithFetcherTracer(instruments.Tracer("internal.dogs.photos")),
		dogsobs.WithFetcherMeter(instruments.Meter("internal.dogs.photos")),
	)
	photoActivities := dogactivities.NewActivities(photoFetcher)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, dogworkflows.PhotoFetchTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(dogworkflows.PhotoFetchWorkflow, workflow.RegisterOptions{Name: dogworkflows.PhotoFetchWorkflowName})
	w.RegisterActivityWithOptions(photoActivities.FetchRandomPhoto, activity.RegisterOptions{Name: dogactivities.FetchRandomPhotoActivityName})

	logger.Info("worker listening", slog.String("taskQueue", dogworkflows.PhotoFetchTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
