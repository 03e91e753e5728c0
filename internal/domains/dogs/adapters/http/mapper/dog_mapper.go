package mapper

import (
	"time"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/navigation"
)

// Dog is the HTTP representation of a listed dog.
type Dog struct {
	Name         string     `json:"name"`
	Breed        string     `json:"breed"`
	ImageURL     string     `json:"imageUrl"`
	IsFavorite   bool       `json:"isFavorite"`
	DetailsRoute string     `json:"detailsRoute"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// DogList is the list screen payload.
type DogList struct {
	Dogs          []Dog  `json:"dogs"`
	SearchText    string `json:"searchText"`
	Total         int    `json:"total"`
	FavoriteCount int    `json:"favoriteCount"`
}

// AddDog captures the direct add payload.
type AddDog struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// SearchText carries the list filter.
type SearchText struct {
	Text string `json:"text"`
}

// PhotoFetchState is the add-dog screen's photo state.
type PhotoFetchState struct {
	Status   string `json:"status"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AddFlow describes an open add-dog flow.
type AddFlow struct {
	ID    string          `json:"id"`
	State PhotoFetchState `json:"state"`
}

// SubmitForm is the add-dog form.
type SubmitForm struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

// SubmitResult reports what the form submit did. Dog is set whenever a dog was submitted.
type SubmitResult struct {
	Submitted bool `json:"submitted"`
	Added     bool `json:"added"`
	Dog       *Dog `json:"dog,omitempty"`
}

// Destination is a parsed navigation route. Dog carries the stored record for details routes.
type Destination struct {
	Kind     string `json:"kind"`
	Route    string `json:"route"`
	Name     string `json:"name,omitempty"`
	Breed    string `json:"breed,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Dog      *Dog   `json:"dog,omitempty"`
}

// ToAddDogInput maps the transport payload into the application command.
func ToAddDogInput(payload AddDog) dogtypes.AddDogInput {
	return dogtypes.AddDogInput{Name: payload.Name, Breed: payload.Breed, ImageURL: payload.ImageURL}
}

// FromProjection maps a stored dog into its HTTP representation.
func FromProjection(p *dogtypes.DogProjection) Dog {
	if p == nil {
		return Dog{}
	}
	dog := p.Entity
	return Dog{
		Name:         dog.Name,
		Breed:        dog.Breed,
		ImageURL:     dog.ImageURL,
		IsFavorite:   dog.IsFavorite,
		DetailsRoute: DetailsRoute(dog),
		CreatedAt:    timestamp(p.Metadata.CreatedAt),
		UpdatedAt:    timestamp(p.Metadata.UpdatedAt),
	}
}

// timestamp leaves unset bookkeeping times out of the payload.
func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// FromListView maps the list snapshot.
func FromListView(view *dogtypes.DogListView) DogList {
	out := DogList{Dogs: []Dog{}}
	if view == nil {
		return out
	}
	out.SearchText = view.SearchText
	out.Total = view.Total
	out.FavoriteCount = view.FavoriteCount
	for _, p := range view.Dogs {
		out.Dogs = append(out.Dogs, FromProjection(p))
	}
	return out
}

// DetailsRoute is the navigation route that opens the dog's details.
func DetailsRoute(dog domain.Dog) string {
	return navigation.DogDetails{Name: dog.Name, Breed: dog.Breed, ImageURL: dog.ImageURL}.Route()
}

// FromFetchState maps the photo fetch state.
func FromFetchState(state domain.PhotoFetchState) PhotoFetchState {
	out := PhotoFetchState{Status: string(state.Status), PhotoURL: state.PhotoURL}
	if state.Err != nil {
		out.Error = state.Err.Error()
	}
	return out
}

// FromSubmit maps the outcome of a form submit.
func FromSubmit(result *dogtypes.AddDogResult, submitted bool) SubmitResult {
	out := SubmitResult{Submitted: submitted}
	if result == nil {
		return out
	}
	out.Added = result.Added
	dog := FromProjection(result.Dog)
	out.Dog = &dog
	return out
}

// FromDestination maps a parsed navigation destination.
func FromDestination(d navigation.Destination) Destination {
	out := Destination{Kind: navigation.Name(d), Route: d.Route()}
	if details, ok := d.(navigation.DogDetails); ok {
		out.Name = details.Name
		out.Breed = details.Breed
		out.ImageURL = details.ImageURL
	}
	return out
}
