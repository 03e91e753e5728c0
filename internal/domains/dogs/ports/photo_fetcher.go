package ports

import (
	"context"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
)

// PhotoFetcher retrieves one random dog photo (outbound/driven port).
// Every failure wraps domain.ErrNetwork.
type PhotoFetcher interface {
	GetRandomImage(ctx context.Context) (*domain.DogPhoto, error)
}
