package dogs

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	dogports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// FetchRandomPhotoActivityName calls the random image endpoint once.
const FetchRandomPhotoActivityName = "dogs.activities.FetchRandomPhoto"

// Activities groups activities that talk to the dog photo API.
type Activities struct {
	fetcher dogports.PhotoFetcher
}

// NewActivities wires the photo fetcher into the Temporal activities bundle.
func NewActivities(fetcher dogports.PhotoFetcher) *Activities {
	return &Activities{fetcher: fetcher}
}

// FetchRandomPhoto returns one random dog photo.
func (a *Activities) FetchRandomPhoto(ctx context.Context) (*domain.DogPhoto, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.fetcher == nil {
		logger.Error("photo fetch activity not initialized")
		return nil, errors.New("photo fetch activity not initialized")
	}
	logger.Info("FetchRandomPhoto activity started")
	photo, err := a.fetcher.GetRandomImage(ctx)
	if err != nil {
		logger.Error("FetchRandomPhoto activity failed", "error", err)
		return nil, err
	}
	logger.Info("FetchRandomPhoto activity completed", "url", photo.URL())
	return photo, nil
}
