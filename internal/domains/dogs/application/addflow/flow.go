// Package addflow coordinates the add-dog screen: one photo fetch per entry or retry, and the
// form submit that hands the fetched URL to the dog list.
package addflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// ErrClosed is returned by Wait once the flow has been closed.
var ErrClosed = errors.New("add-dog flow closed")

// Flow is the Loading/Success/Error state machine of a single add-dog screen visit.
// A new fetch supersedes the pending one: the old fetch is cancelled and its result dropped.
type Flow struct {
	fetcher ports.PhotoFetcher
	dogs    ports.Service
	logger  *slog.Logger

	mu         sync.Mutex
	state      domain.PhotoFetchState
	generation uint64
	cancel     context.CancelFunc
	// settled is closed when the current generation resolves or is superseded.
	settled     chan struct{}
	settledOpen bool
	closed      bool
	inflight    sync.WaitGroup
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// New builds a flow in the Loading state. Call Start to launch the first fetch.
func New(fetcher ports.PhotoFetcher, dogs ports.Service, opts ...Option) *Flow {
	f := &Flow{
		fetcher:     fetcher,
		dogs:        dogs,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:       domain.Loading(),
		settled:     make(chan struct{}),
		settledOpen: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.logger == nil {
		f.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f
}

// Start launches the fetch for a screen entry.
func (f *Flow) Start(ctx context.Context) {
	f.launch(ctx)
}

// Retry resets to Loading and fetches again.
func (f *Flow) Retry(ctx context.Context) {
	f.launch(ctx)
}

// State returns the current fetch state.
func (f *Flow) State() domain.PhotoFetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Wait blocks until the current fetch settles, the flow closes, or ctx ends.
func (f *Flow) Wait(ctx context.Context) (domain.PhotoFetchState, error) {
	for {
		f.mu.Lock()
		state, settled, closed := f.state, f.settled, f.closed
		f.mu.Unlock()
		if state.Settled() {
			return state, nil
		}
		if closed {
			return state, ErrClosed
		}
		select {
		case <-settled:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

// Submit adds the dog with the fetched photo, or with an empty image URL when no photo is
// available yet. Blank name or breed is a silent no-op.
func (f *Flow) Submit(ctx context.Context, name, breed string) (*dogtypes.AddDogResult, bool, error) {
	if domain.IsBlank(name) || domain.IsBlank(breed) {
		return nil, false, nil
	}
	imageURL := f.State().ImageURL()
	result, err := f.dogs.AddDog(ctx, dogtypes.AddDogInput{Name: name, Breed: breed, ImageURL: imageURL})
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// Close cancels any pending fetch and waits for it to return.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	f.releaseWaiters()
	f.mu.Unlock()
	f.inflight.Wait()
}

func (f *Flow) launch(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.releaseWaiters()
	f.settled = make(chan struct{})
	f.settledOpen = true

	f.generation++
	generation := f.generation
	// The fetch outlives the request that triggered it but keeps its values (trace context).
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.cancel = cancel
	f.state = domain.Loading()

	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		defer cancel()
		photo, err := f.fetcher.GetRandomImage(fetchCtx)
		f.settle(generation, photo, err)
	}()
}

func (f *Flow) settle(generation uint64, photo *domain.DogPhoto, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if generation != f.generation || f.closed {
		return
	}
	if err == nil && photo.URL() == "" {
		err = fmt.Errorf("%w: empty photo payload", domain.ErrNetwork)
	}
	if err != nil {
		f.logger.Warn("dog photo fetch failed", slog.Uint64("generation", generation), slog.String("error", err.Error()))
		f.state = domain.Failed(err)
	} else {
		f.state = domain.Succeeded(photo.URL())
	}
	f.releaseWaiters()
}

// releaseWaiters must be called with mu held.
func (f *Flow) releaseWaiters() {
	if f.settledOpen {
		close(f.settled)
		f.settledOpen = false
	}
}

var _ ports.AddFlow = (*Flow)(nil)
