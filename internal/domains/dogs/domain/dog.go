package domain

import (
	"errors"
	"strings"
)

// ErrNetwork is the single failure kind of the photo fetch. Transport errors, non-2xx statuses
// and undecodable bodies are all wrapped with it.
var ErrNetwork = errors.New("dog photo network error")

// Dog is a single entry of the personal dog list. Name is the identity.
type Dog struct {
	Name       string
	Breed      string
	ImageURL   string
	IsFavorite bool
}

// DogPhoto mirrors the payload of the random image endpoint.
type DogPhoto struct {
	Message string
	Status  string
}

// URL returns the image location carried by the photo payload.
func (p *DogPhoto) URL() string {
	if p == nil {
		return ""
	}
	return p.Message
}

// IsBlank reports whether the value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
