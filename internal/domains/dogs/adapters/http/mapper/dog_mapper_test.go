package mapper

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/navigation"
	"github.com/Apurer/go-gin-doglist/internal/shared/projection"
)

func TestFromProjection_DetailsRouteRoundTrips(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &dogtypes.DogProjection{
		Entity:   domain.Dog{Name: "Rex & Co", Breed: "Husky", ImageURL: "https://images.dog.ceo/a b.jpg", IsFavorite: true},
		Metadata: projection.Metadata{CreatedAt: created, UpdatedAt: created},
	}

	dog := FromProjection(p)
	require.True(t, dog.IsFavorite)
	require.NotNil(t, dog.CreatedAt)
	require.Equal(t, created, *dog.CreatedAt)

	dest, err := navigation.Parse(dog.DetailsRoute)
	require.NoError(t, err)
	require.Equal(t, navigation.DogDetails{Name: "Rex & Co", Breed: "Husky", ImageURL: "https://images.dog.ceo/a b.jpg"}, dest)
}

func TestFromProjection_OmitsUnsetTimestamps(t *testing.T) {
	dog := FromProjection(&dogtypes.DogProjection{Entity: domain.Dog{Name: "Rex", Breed: "Husky"}})
	require.Nil(t, dog.CreatedAt)
	require.Nil(t, dog.UpdatedAt)

	raw, err := json.Marshal(dog)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "createdAt")
	require.NotContains(t, string(raw), "updatedAt")
	require.NotContains(t, string(raw), "0001-01-01")
}

func TestFromListView_EmptyListIsNotNull(t *testing.T) {
	out := FromListView(&dogtypes.DogListView{})
	require.NotNil(t, out.Dogs)
	require.Empty(t, out.Dogs)
}

func TestFromFetchState(t *testing.T) {
	require.Equal(t, PhotoFetchState{Status: "loading"}, FromFetchState(domain.Loading()))
	require.Equal(t, PhotoFetchState{Status: "success", PhotoURL: "u"}, FromFetchState(domain.Succeeded("u")))
	require.Equal(t, PhotoFetchState{Status: "error", Error: "offline"}, FromFetchState(domain.Failed(errors.New("offline"))))
}

func TestFromSubmit(t *testing.T) {
	require.Equal(t, SubmitResult{}, FromSubmit(nil, false))

	res := FromSubmit(&dogtypes.AddDogResult{Dog: &dogtypes.DogProjection{Entity: domain.Dog{Name: "Rex"}}, Added: true}, true)
	require.True(t, res.Submitted)
	require.True(t, res.Added)
	require.Equal(t, "Rex", res.Dog.Name)
}

func TestFromDestination(t *testing.T) {
	require.Equal(t, Destination{Kind: "add_dog", Route: "dogs/new"}, FromDestination(navigation.AddDogScreen{}))
	out := FromDestination(navigation.DogDetails{Name: "Rex"})
	require.Equal(t, "dog_details", out.Kind)
	require.Equal(t, "Rex", out.Name)
}
