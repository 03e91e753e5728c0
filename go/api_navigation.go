package doglistserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	doghttpmapper "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/http/mapper"
	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/navigation"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// NavigationAPI turns stored routes back into destinations.
type NavigationAPI struct {
	service dogsports.Service
}

// NewNavigationAPI wires the dog service used to resolve details routes.
func NewNavigationAPI(service dogsports.Service) NavigationAPI {
	return NavigationAPI{service: service}
}

// Get /v1/navigation/resolve
// Parses a route; details routes also resolve the dog from the list
func (api *NavigationAPI) ResolveRoute(c *gin.Context) {
	dest, err := navigation.Parse(c.Query("route"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := doghttpmapper.FromDestination(dest)
	if details, ok := dest.(navigation.DogDetails); ok {
		query := dogtypes.DetailsQuery{Name: details.Name, Breed: details.Breed, ImageURL: details.ImageURL}
		stored, err := api.service.FindByName(c.Request.Context(), query)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		dog := doghttpmapper.FromProjection(stored)
		out.Dog = &dog
	}
	c.JSON(http.StatusOK, out)
}
