//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-doglist/test/pact"

	doglistserver "github.com/Apurer/go-gin-doglist/go"
	dogsmemory "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/memory"
	dogsobs "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/observability"
	dogsworkflows "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/workflows"
	dogsapp "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/addflow"
	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestDogListProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateDogsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
		pacttest.StateDogExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			if setup {
				app.seedDog(t)
			}
			return nil, nil
		},
		pacttest.StateDogMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset()
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

// resettableService swaps in a fresh dog list between provider states.
type resettableService struct {
	mu      sync.Mutex
	current *dogsapp.Service
}

func (r *resettableService) svc() *dogsapp.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *resettableService) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = dogsapp.NewService()
}

func (r *resettableService) AddDog(ctx context.Context, in dogtypes.AddDogInput) (*dogtypes.AddDogResult, error) {
	return r.svc().AddDog(ctx, in)
}

func (r *resettableService) RemoveDog(ctx context.Context, in dogtypes.DogIdentifier) (bool, error) {
	return r.svc().RemoveDog(ctx, in)
}

func (r *resettableService) ToggleFavorite(ctx context.Context, in dogtypes.DogIdentifier) (*dogtypes.DogProjection, error) {
	return r.svc().ToggleFavorite(ctx, in)
}

func (r *resettableService) SetSearchText(ctx context.Context, in dogtypes.SetSearchTextInput) error {
	return r.svc().SetSearchText(ctx, in)
}

func (r *resettableService) SearchText(ctx context.Context) (string, error) {
	return r.svc().SearchText(ctx)
}

func (r *resettableService) ListDogs(ctx context.Context) (*dogtypes.DogListView, error) {
	return r.svc().ListDogs(ctx)
}

func (r *resettableService) FindByName(ctx context.Context, q dogtypes.DetailsQuery) (*dogtypes.DogProjection, error) {
	return r.svc().FindByName(ctx, q)
}

type stubPhotos struct{}

func (stubPhotos) GetRandomImage(context.Context) (*domain.DogPhoto, error) {
	return &domain.DogPhoto{Message: pacttest.ExampleImageURL, Status: "success"}, nil
}

type contractProviderApp struct {
	dogs   *resettableService
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	dogs := &resettableService{current: dogsapp.NewService()}
	service := dogsobs.New(dogs)
	photos := dogsworkflows.NewInlinePhotoWorkflows(stubPhotos{})
	sessions := dogsmemory.NewFlowSessions(func() dogsports.AddFlow {
		return addflow.New(photos, service)
	}, time.Minute)
	t.Cleanup(sessions.CloseAll)

	handlers := doglistserver.ApiHandleFunctions{
		DogsAPI:       doglistserver.NewDogsAPI(service),
		AddFlowsAPI:   doglistserver.NewAddFlowsAPI(sessions, time.Second),
		NavigationAPI: doglistserver.NewNavigationAPI(service),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = doglistserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{dogs: dogs, server: server}
}

func (a *contractProviderApp) reset() {
	a.dogs.reset()
}

func (a *contractProviderApp) seedDog(t testing.TB) {
	t.Helper()
	payload := pacttest.ExampleDogPayload()
	_, err := a.dogs.AddDog(context.Background(), dogtypes.AddDogInput{
		Name:     payload["name"].(string),
		Breed:    payload["breed"].(string),
		ImageURL: payload["imageUrl"].(string),
	})
	require.NoError(t, err)
}

var _ dogsports.Service = (*resettableService)(nil)
