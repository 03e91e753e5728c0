package api

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dogsmemory "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/memory"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/addflow"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

type instantFetcher struct{}

func (instantFetcher) GetRandomImage(context.Context) (*domain.DogPhoto, error) {
	return &domain.DogPhoto{Message: "https://images.dog.ceo/breeds/pug/1.jpg", Status: "success"}, nil
}

func TestRunFlowJanitor_ClosesIdleFlows(t *testing.T) {
	service := application.NewService()
	sessions := dogsmemory.NewFlowSessions(func() dogsports.AddFlow {
		return addflow.New(instantFetcher{}, service)
	}, time.Minute)
	var mu sync.Mutex
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sessions.WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	})
	defer sessions.CloseAll()

	_, _, err := sessions.Open(context.Background())
	require.NoError(t, err)
	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runFlowJanitor(ctx, sessions, 5*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()
	require.Eventually(t, func() bool { return sessions.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestBuildPhotoFetcher(t *testing.T) {
	fetcher, err := BuildPhotoFetcher(Config{DogAPIBaseURL: "https://dog.ceo/api", DogAPITimeout: time.Second}, nil)
	require.NoError(t, err)
	require.NotNil(t, fetcher)

	_, err = BuildPhotoFetcher(Config{DogAPIBaseURL: " "}, nil)
	require.Error(t, err)
}

func TestConnectTemporalClient_Disabled(t *testing.T) {
	_, err := ConnectTemporalClient(Config{TemporalDisabled: true}, nil)
	require.ErrorContains(t, err, "disabled")
}
