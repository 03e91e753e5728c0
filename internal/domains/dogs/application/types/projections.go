package types

import (
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/shared/projection"
)

// DogProjection is a snapshot of a dog plus its bookkeeping timestamps.
type DogProjection = projection.Projection[domain.Dog]

// AddDogResult reports the dog stored under the requested name and whether this call created it.
type AddDogResult struct {
	Dog   *DogProjection
	Added bool
}
