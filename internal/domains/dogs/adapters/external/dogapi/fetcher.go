package dogapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// Fetcher implements the photo fetch port on top of the Dog CEO client.
type Fetcher struct {
	client *dogapiclient.Client
	breed  string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBreed pins every fetch to one breed's image pool.
func WithBreed(breed string) Option {
	return func(f *Fetcher) {
		f.breed = strings.TrimSpace(breed)
	}
}

// NewFetcher wires the Dog CEO client into the port adapter.
func NewFetcher(client *dogapiclient.Client, opts ...Option) *Fetcher {
	f := &Fetcher{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// GetRandomImage fetches one random photo. Any failure is reported as domain.ErrNetwork.
func (f *Fetcher) GetRandomImage(ctx context.Context) (*domain.DogPhoto, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, errors.New("dog photo fetcher not configured"))
	}
	var (
		resp *dogapiclient.RandomImageResponse
		err  error
	)
	if f.breed != "" {
		resp, err = f.client.RandomBreedImage(ctx, f.breed)
	} else {
		resp, err = f.client.RandomImage(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	return ToDogPhoto(resp), nil
}

var _ ports.PhotoFetcher = (*Fetcher)(nil)
