package application

import (
	"context"
	"sync"
	"time"

	types "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
	"github.com/Apurer/go-gin-doglist/internal/shared/projection"
)

// Service owns the dog list and serialises every operation on it.
type Service struct {
	mu       sync.Mutex
	list     *domain.DogList
	metadata map[string]projection.Metadata
	now      func() time.Time
}

// NewService builds a service around an empty list.
func NewService() *Service {
	return &Service{
		list:     domain.NewDogList(),
		metadata: map[string]projection.Metadata{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// AddDog stores a new dog. A name that already exists leaves the list untouched and reports the
// stored dog with Added=false.
func (s *Service) AddDog(_ context.Context, input types.AddDogInput) (*types.AddDogResult, error) {
	if err := validateAddDog(input.Name, input.Breed); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dog, added := s.list.AddDog(input.Name, input.Breed, input.ImageURL)
	if added {
		timestamp := s.now()
		s.metadata[dog.Name] = projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	}
	return &types.AddDogResult{Dog: s.project(dog), Added: added}, nil
}

// RemoveDog deletes the dog with the given name. Unknown names are ignored and report false.
func (s *Service) RemoveDog(_ context.Context, input types.DogIdentifier) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dog, ok := s.list.FindByName(input.Name)
	if !ok || !s.list.RemoveDog(dog) {
		return false, nil
	}
	delete(s.metadata, dog.Name)
	return true, nil
}

// ToggleFavorite flips the favorite flag of the named dog.
func (s *Service) ToggleFavorite(_ context.Context, input types.DogIdentifier) (*types.DogProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dog, ok := s.list.FindByName(input.Name)
	if !ok {
		return nil, &ports.DogNotFoundError{Name: input.Name}
	}
	// The dog comes from the list itself, so it is always in its source collection.
	s.list.ToggleFavorite(dog)
	meta := s.metadata[dog.Name]
	meta.UpdatedAt = s.now()
	s.metadata[dog.Name] = meta
	return s.project(dog), nil
}

// SetSearchText stores the filter used by ListDogs.
func (s *Service) SetSearchText(_ context.Context, input types.SetSearchTextInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.SetSearchText(input.Text)
	return nil
}

// SearchText returns the stored filter.
func (s *Service) SearchText(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.SearchText(), nil
}

// ListDogs snapshots the filtered dogs, favorites first, with the header counters.
func (s *Service) ListDogs(_ context.Context) (*types.DogListView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &types.DogListView{
		Dogs:          []*types.DogProjection{},
		SearchText:    s.list.SearchText(),
		Total:         s.list.Len(),
		FavoriteCount: s.list.FavoriteCount(),
	}
	for dog := range s.list.FilteredDogs() {
		view.Dogs = append(view.Dogs, s.project(dog))
	}
	return view, nil
}

// FindByName resolves a dog for the details screen.
func (s *Service) FindByName(_ context.Context, query types.DetailsQuery) (*types.DogProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dog, ok := s.list.FindByName(query.Name)
	if !ok {
		return nil, &ports.DogNotFoundError{Name: query.Name}
	}
	return s.project(dog), nil
}

func (s *Service) project(dog *domain.Dog) *types.DogProjection {
	if dog == nil {
		return nil
	}
	return &types.DogProjection{Entity: *dog, Metadata: s.metadata[dog.Name]}
}

var _ ports.Service = (*Service)(nil)
