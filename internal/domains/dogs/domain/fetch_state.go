package domain

// FetchStatus is the phase of a photo fetch.
type FetchStatus string

const (
	FetchLoading FetchStatus = "loading"
	FetchSuccess FetchStatus = "success"
	FetchError   FetchStatus = "error"
)

// PhotoFetchState is the add-dog screen's view of the photo fetch.
// PhotoURL is only set on success, Err only on error.
type PhotoFetchState struct {
	Status   FetchStatus
	PhotoURL string
	Err      error
}

// Loading is the state while a fetch is in flight.
func Loading() PhotoFetchState {
	return PhotoFetchState{Status: FetchLoading}
}

// Succeeded is the state after a fetch returned a photo.
func Succeeded(photoURL string) PhotoFetchState {
	return PhotoFetchState{Status: FetchSuccess, PhotoURL: photoURL}
}

// Failed is the state after a fetch failed for any reason.
func Failed(err error) PhotoFetchState {
	return PhotoFetchState{Status: FetchError, Err: err}
}

// Settled reports whether the fetch has resolved either way.
func (s PhotoFetchState) Settled() bool {
	return s.Status == FetchSuccess || s.Status == FetchError
}

// ImageURL is the URL to attach to a new dog: the fetched photo on success, empty otherwise.
func (s PhotoFetchState) ImageURL() string {
	if s.Status != FetchSuccess {
		return ""
	}
	return s.PhotoURL
}
