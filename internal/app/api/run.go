package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	doglistserver "github.com/Apurer/go-gin-doglist/go"
	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"
	dogsexternal "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/external/dogapi"
	dogsmemory "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/memory"
	dogsobs "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/observability"
	dogsworkflows "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/workflows"
	dogsapp "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/addflow"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
	platformobservability "github.com/Apurer/go-gin-doglist/internal/platform/observability"
)

const shutdownTimeout = 5 * time.Second

// Run boots the dog list HTTP API with observability, the photo fetcher, and workflows wired.
// It returns when ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	const serviceName = "doglist-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	directFetcher, err := BuildPhotoFetcher(cfg, instruments)
	if err != nil {
		return err
	}
	var photoWorkflows dogsports.PhotoFetcher = dogsworkflows.NewInlinePhotoWorkflows(directFetcher)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, fetching dog photos inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		photoWorkflows = dogsworkflows.NewTemporalPhotoWorkflows(
			temporalClient,
			dogsworkflows.WithExecutionTimeout(cfg.TemporalWorkflowTimeout),
			dogsworkflows.WithLogger(logger),
		)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	photoFetcher := dogsobs.NewFetcher(
		photoWorkflows,
		dogsobs.WithFetcherLogger(logger),
		dogsobs.WithFetcherTracer(instruments.Tracer("internal.dogs.photos")),
		dogsobs.WithFetcherMeter(instruments.Meter("internal.dogs.photos")),
	)

	dogService := dogsobs.New(
		dogsapp.NewService(),
		dogsobs.WithLogger(logger),
		dogsobs.WithTracer(instruments.Tracer("internal.dogs.application")),
		dogsobs.WithMeter(instruments.Meter("internal.dogs.application")),
	)
	flowLogger := logger.With(slog.String("component", "add-dog-flow"))
	sessions := dogsmemory.NewFlowSessions(func() dogsports.AddFlow {
		return addflow.New(photoFetcher, dogService, addflow.WithLogger(flowLogger))
	}, cfg.AddFlowTTL)
	defer sessions.CloseAll()

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go runFlowJanitor(janitorCtx, sessions, cfg.AddFlowTTL/2, logger)

	handlers := doglistserver.ApiHandleFunctions{
		DogsAPI:       doglistserver.NewDogsAPI(dogService),
		AddFlowsAPI:   doglistserver.NewAddFlowsAPI(sessions, doglistserver.DefaultMaxWait),
		NavigationAPI: doglistserver.NewNavigationAPI(dogService),
	}
	engine := gin.New()
	engine.Use(
		gin.Logger(),
		gin.Recovery(),
		otelgin.Middleware(serviceName, otelgin.WithTracerProvider(instruments.TracerProvider)),
	)
	router := doglistserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Dog list API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Dog list API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("Dog list API shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown dog list API: %w", err)
	}
	return nil
}

// BuildPhotoFetcher wires the Dog CEO client into the photo fetch port.
func BuildPhotoFetcher(cfg Config, instruments *platformobservability.Instruments) (*dogsexternal.Fetcher, error) {
	transportOpts := []otelhttp.Option{}
	if instruments != nil {
		transportOpts = append(transportOpts,
			otelhttp.WithTracerProvider(instruments.TracerProvider),
			otelhttp.WithMeterProvider(instruments.MeterProvider),
		)
	}
	httpClient := &http.Client{
		Timeout:   cfg.DogAPITimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport, transportOpts...),
	}
	apiClient, err := dogapiclient.NewClient(cfg.DogAPIBaseURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("configure dog api client: %w", err)
	}
	return dogsexternal.NewFetcher(apiClient, dogsexternal.WithBreed(cfg.DogAPIBreed)), nil
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func runFlowJanitor(ctx context.Context, sessions *dogsmemory.FlowSessions, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if purged := sessions.PurgeIdle(ctx); purged > 0 {
				logger.Info("closed idle add-dog flows", slog.Int("count", purged), slog.Int("open", sessions.Len()))
			}
		}
	}
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
