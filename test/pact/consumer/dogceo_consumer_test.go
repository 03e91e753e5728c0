//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-doglist/test/pact"

	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

func TestDogCEOContract(t *testing.T) {
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ProviderName,
		Provider: pacttest.DogCEOProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	imageBody := matchers.Map{
		"message": matchers.Term(pacttest.ExampleImageURL, `^https://images\.dog\.ceo/breeds/.+`),
		"status":  matchers.S("success"),
	}

	pact.AddInteraction().
		Given(pacttest.StateRandomImage).
		UponReceiving("a request for a random dog image").
		WithRequest("GET", "/api/breeds/image/random", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Accept", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.JSONBody(imageBody)
		})

	pact.AddInteraction().
		Given(pacttest.StateBreedImage).
		UponReceiving("a request for a random husky image").
		WithRequest("GET", "/api/breed/husky/images/random", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Accept", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.JSONBody(imageBody)
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := dogapiclient.NewClient(fmt.Sprintf("http://%s:%d/api", host, config.Port), &http.Client{Timeout: 5 * time.Second})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		random, err := client.RandomImage(ctx)
		if err != nil {
			return fmt.Errorf("random image: %w", err)
		}
		if random.Message == "" || random.Status != "success" {
			return fmt.Errorf("unexpected random image payload %+v", random)
		}
		if _, err := client.RandomBreedImage(ctx, "husky"); err != nil {
			return fmt.Errorf("breed image: %w", err)
		}
		return nil
	})
	require.NoError(t, err)
}
