package doglistserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouterWithGinEngine adds the API routes to an existing engine. Routing runs on the raw path
// so dog names containing an escaped '/' stay a single path parameter.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.UseRawPath = true
	router.UnescapePathValues = true
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the dogs part of the API
	DogsAPI DogsAPI
	// Routes for the add-flows part of the API
	AddFlowsAPI AddFlowsAPI
	// Routes for the navigation part of the API
	NavigationAPI NavigationAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListDogs", http.MethodGet, "/v1/dogs", handleFunctions.DogsAPI.ListDogs},
		{"AddDog", http.MethodPost, "/v1/dogs", handleFunctions.DogsAPI.AddDog},
		{"GetDog", http.MethodGet, "/v1/dogs/:name", handleFunctions.DogsAPI.GetDog},
		{"RemoveDog", http.MethodDelete, "/v1/dogs/:name", handleFunctions.DogsAPI.RemoveDog},
		{"ToggleFavorite", http.MethodPost, "/v1/dogs/:name/favorite", handleFunctions.DogsAPI.ToggleFavorite},
		{"GetSearchText", http.MethodGet, "/v1/search", handleFunctions.DogsAPI.GetSearchText},
		{"SetSearchText", http.MethodPut, "/v1/search", handleFunctions.DogsAPI.SetSearchText},
		{"OpenAddFlow", http.MethodPost, "/v1/add-flows", handleFunctions.AddFlowsAPI.OpenAddFlow},
		{"GetAddFlow", http.MethodGet, "/v1/add-flows/:flowId", handleFunctions.AddFlowsAPI.GetAddFlow},
		{"RetryAddFlow", http.MethodPost, "/v1/add-flows/:flowId/retry", handleFunctions.AddFlowsAPI.RetryAddFlow},
		{"SubmitAddFlow", http.MethodPost, "/v1/add-flows/:flowId/submit", handleFunctions.AddFlowsAPI.SubmitAddFlow},
		{"CloseAddFlow", http.MethodDelete, "/v1/add-flows/:flowId", handleFunctions.AddFlowsAPI.CloseAddFlow},
		{"ResolveRoute", http.MethodGet, "/v1/navigation/resolve", handleFunctions.NavigationAPI.ResolveRoute},
	}
}
