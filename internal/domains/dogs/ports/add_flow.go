package ports

import (
	"context"
	"errors"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
)

// ErrFlowNotFound is returned for unknown or already closed add-dog flows.
var ErrFlowNotFound = errors.New("add-dog flow not found")

// AddFlow drives one visit of the add-dog screen: a photo fetch plus the form submit.
type AddFlow interface {
	Start(ctx context.Context)
	Retry(ctx context.Context)
	State() domain.PhotoFetchState
	Wait(ctx context.Context) (domain.PhotoFetchState, error)
	// Submit adds the dog when name and breed are both non-blank; submitted is false otherwise.
	Submit(ctx context.Context, name, breed string) (result *dogtypes.AddDogResult, submitted bool, err error)
	Close()
}

// AddFlowSessions keeps the open add-dog flows addressable by id.
type AddFlowSessions interface {
	Open(ctx context.Context) (string, AddFlow, error)
	Get(ctx context.Context, id string) (AddFlow, error)
	Close(ctx context.Context, id string) error
}
