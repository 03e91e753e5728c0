package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func serveError(t *testing.T, responder *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/thing", func(c *gin.Context) { responder.RespondError(c, err) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/thing", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return w, problem
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("https://doglist.example",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errUpstream) {
				return NewUpstreamProblem("dog.ceo", err), true
			}
			return ProblemDetail{}, false
		},
	)

	w, problem := serveError(t, responder, errUpstream)
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	require.Equal(t, "https://doglist.example"+TypeBadGateway, problem.Type)
	require.Equal(t, "/v1/thing", problem.Instance)
	require.Equal(t, "dog.ceo", problem.Extensions["upstream"])
}

func TestChainedResponder_FallsBackToInternal(t *testing.T) {
	w, problem := serveError(t, NewChainedResponder(""), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, TypeInternal, problem.Type)
	require.Equal(t, "boom", problem.Detail)
}

func TestChainedResponder_PassesProblemThrough(t *testing.T) {
	w, problem := serveError(t, NewChainedResponder(""), fmt.Errorf("lookup: %w", NewNotFoundProblem("dog", "Rex")))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "dog with identifier 'Rex' not found", problem.Detail)
	require.Equal(t, "Rex", problem.Extensions["identifier"])
}

func TestNewValidationProblem_CarriesFields(t *testing.T) {
	w, problem := serveError(t, NewChainedResponder(""), NewValidationProblem(map[string]string{"name": "dog name is required"}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, TypeValidation, problem.Type)
	require.Equal(t, map[string]any{"name": "dog name is required"}, problem.Extensions["fields"])
}

func TestWithExtension_DoesNotShareTemplateMap(t *testing.T) {
	first := ErrNotFound.WithExtension("resourceType", "dog")
	second := first.WithExtension("identifier", "Rex")

	require.Len(t, first.Extensions, 1)
	require.Len(t, second.Extensions, 2)
	require.Nil(t, ErrNotFound.Extensions)
}
