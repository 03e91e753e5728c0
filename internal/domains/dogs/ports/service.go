package ports

import (
	"context"
	"errors"
	"fmt"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
)

// ErrNotFound is the not-found signal of the details lookup.
var ErrNotFound = errors.New("dog not found")

// DogNotFoundError names the dog a lookup could not resolve. It matches ErrNotFound.
type DogNotFoundError struct {
	Name string
}

func (e *DogNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotFound, e.Name)
}

func (e *DogNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Service defines the dog list use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddDog(ctx context.Context, input dogtypes.AddDogInput) (*dogtypes.AddDogResult, error)
	// RemoveDog reports whether a dog was removed; unknown names are not an error.
	RemoveDog(ctx context.Context, input dogtypes.DogIdentifier) (bool, error)
	ToggleFavorite(ctx context.Context, input dogtypes.DogIdentifier) (*dogtypes.DogProjection, error)
	SetSearchText(ctx context.Context, input dogtypes.SetSearchTextInput) error
	SearchText(ctx context.Context) (string, error)
	ListDogs(ctx context.Context) (*dogtypes.DogListView, error)
	FindByName(ctx context.Context, query dogtypes.DetailsQuery) (*dogtypes.DogProjection, error)
}
