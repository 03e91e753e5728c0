package doglistserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	doghttpmapper "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/http/mapper"
	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// DogsAPI wires HTTP transport with the dog list service.
type DogsAPI struct {
	service dogsports.Service
}

// NewDogsAPI creates a DogsAPI backed by the provided service.
func NewDogsAPI(service dogsports.Service) DogsAPI {
	return DogsAPI{service: service}
}

// Get /v1/dogs
// Lists the dogs matching the current search text, favorites first
func (api *DogsAPI) ListDogs(c *gin.Context) {
	view, err := api.service.ListDogs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromListView(view))
}

// Post /v1/dogs
// Adds a dog; an existing name is left untouched
func (api *DogsAPI) AddDog(c *gin.Context) {
	var payload doghttpmapper.AddDog
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.AddDog(c.Request.Context(), doghttpmapper.ToAddDogInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	status := http.StatusOK
	if result.Added {
		status = http.StatusCreated
	}
	c.JSON(status, doghttpmapper.FromProjection(result.Dog))
}

// Get /v1/dogs/:name
// Resolves a dog for the details screen
func (api *DogsAPI) GetDog(c *gin.Context) {
	name, ok := bindPathParam(c, "name")
	if !ok {
		return
	}
	query := dogtypes.DetailsQuery{Name: name, Breed: c.Query("breed"), ImageURL: c.Query("imageUrl")}
	dog, err := api.service.FindByName(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromProjection(dog))
}

// Delete /v1/dogs/:name
// Removes a dog
func (api *DogsAPI) RemoveDog(c *gin.Context) {
	name, ok := bindPathParam(c, "name")
	if !ok {
		return
	}
	if _, err := api.service.RemoveDog(c.Request.Context(), dogtypes.DogIdentifier{Name: name}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/dogs/:name/favorite
// Toggles the favorite flag of a dog
func (api *DogsAPI) ToggleFavorite(c *gin.Context) {
	name, ok := bindPathParam(c, "name")
	if !ok {
		return
	}
	dog, err := api.service.ToggleFavorite(c.Request.Context(), dogtypes.DogIdentifier{Name: name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.FromProjection(dog))
}

// Get /v1/search
// Returns the current search text
func (api *DogsAPI) GetSearchText(c *gin.Context) {
	text, err := api.service.SearchText(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doghttpmapper.SearchText{Text: text})
}

// Put /v1/search
// Sets the search text
func (api *DogsAPI) SetSearchText(c *gin.Context) {
	var payload doghttpmapper.SearchText
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.SetSearchText(c.Request.Context(), dogtypes.SetSearchTextInput{Text: payload.Text}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}
