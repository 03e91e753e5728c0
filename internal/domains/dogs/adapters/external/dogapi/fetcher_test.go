package dogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
)

func newFetcher(t *testing.T, handler http.HandlerFunc, opts ...Option) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := dogapiclient.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	return NewFetcher(client, opts...)
}

func TestFetcher_MapsPayload(t *testing.T) {
	fetcher := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":" https://images.dog.ceo/breeds/pug/1.jpg ","status":"success"}`))
	})

	photo, err := fetcher.GetRandomImage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://images.dog.ceo/breeds/pug/1.jpg", photo.URL())
	require.Equal(t, "success", photo.Status)
}

func TestFetcher_UsesPinnedBreed(t *testing.T) {
	fetcher := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/breed/pug/images/random", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"https://images.dog.ceo/breeds/pug/2.jpg","status":"success"}`))
	}, WithBreed("pug"))

	photo, err := fetcher.GetRandomImage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://images.dog.ceo/breeds/pug/2.jpg", photo.URL())
}

func TestFetcher_WrapsFailuresAsNetworkError(t *testing.T) {
	fetcher := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := fetcher.GetRandomImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)

	var statusErr *dogapiclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestFetcher_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := dogapiclient.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	server.Close()

	_, err = NewFetcher(client).GetRandomImage(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
}
