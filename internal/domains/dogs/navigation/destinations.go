// Package navigation lists the screens a client can move between and the typed parameters each
// one carries.
package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownRoute is returned when a route does not name any destination.
var ErrUnknownRoute = errors.New("unknown navigation route")

// ErrMissingParameter is returned when a destination route lacks a required parameter.
var ErrMissingParameter = errors.New("missing navigation parameter")

// Destination is a closed set of screens. Only types in this package implement it.
type Destination interface {
	// Route renders the destination as a path a client can store or share.
	Route() string
	destination()
}

const (
	routeDogList  = "dogs"
	routeAddDog   = "dogs/new"
	routeSettings = "settings"
	routeAccount  = "account"
	routeDetails  = "dogs/details"
)

// DogListScreen is the start screen.
type DogListScreen struct{}

// AddDogScreen hosts the add-dog form and the photo fetch.
type AddDogScreen struct{}

// SettingsScreen is the settings placeholder.
type SettingsScreen struct{}

// AccountScreen is the profile placeholder.
type AccountScreen struct{}

// DogDetails opens a dog's details. Breed and ImageURL travel with the name so the screen can
// render before the lookup; the store record wins when both exist.
type DogDetails struct {
	Name     string
	Breed    string
	ImageURL string
}

func (DogListScreen) Route() string  { return routeDogList }
func (AddDogScreen) Route() string   { return routeAddDog }
func (SettingsScreen) Route() string { return routeSettings }
func (AccountScreen) Route() string  { return routeAccount }

func (d DogDetails) Route() string {
	query := url.Values{}
	query.Set("name", d.Name)
	if d.Breed != "" {
		query.Set("breed", d.Breed)
	}
	if d.ImageURL != "" {
		query.Set("imageUrl", d.ImageURL)
	}
	return routeDetails + "?" + query.Encode()
}

func (DogListScreen) destination()  {}
func (AddDogScreen) destination()   {}
func (SettingsScreen) destination() {}
func (AccountScreen) destination()  {}
func (DogDetails) destination()     {}

// Parse validates a route produced by Route and returns the matching destination.
func Parse(route string) (Destination, error) {
	route = strings.TrimPrefix(strings.TrimSpace(route), "/")
	path, rawQuery, _ := strings.Cut(route, "?")
	switch path {
	case routeDogList, "":
		return DogListScreen{}, nil
	case routeAddDog:
		return AddDogScreen{}, nil
	case routeSettings:
		return SettingsScreen{}, nil
	case routeAccount:
		return AccountScreen{}, nil
	case routeDetails:
		query, err := url.ParseQuery(rawQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownRoute, err)
		}
		name := query.Get("name")
		if name == "" {
			return nil, fmt.Errorf("%w: name", ErrMissingParameter)
		}
		return DogDetails{Name: name, Breed: query.Get("breed"), ImageURL: query.Get("imageUrl")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
}

// Name returns a stable identifier for the destination kind.
func Name(d Destination) string {
	switch d.(type) {
	case DogListScreen:
		return "dog_list"
	case AddDogScreen:
		return "add_dog"
	case SettingsScreen:
		return "settings"
	case AccountScreen:
		return "account"
	case DogDetails:
		return "dog_details"
	default:
		return "unknown"
	}
}
