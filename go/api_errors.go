package doglistserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	dogsapp "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/addflow"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/navigation"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
	apierrors "github.com/Apurer/go-gin-doglist/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", mapDogError, mapFlowError, mapNavigationError)

func mapDogError(err error) (apierrors.ProblemDetail, bool) {
	var (
		notFound *dogsports.DogNotFoundError
		invalid  *dogsapp.InputError
	)
	switch {
	case errors.As(err, &notFound):
		return apierrors.NewNotFoundProblem("dog", notFound.Name), true
	case errors.Is(err, dogsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "dog"), true
	case errors.As(err, &invalid):
		return apierrors.NewValidationProblem(invalid.Fields).WithDetail(err.Error()), true
	case errors.Is(err, dogsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, domain.ErrNetwork):
		return apierrors.NewUpstreamProblem("dog-photo-api", err), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapFlowError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, dogsports.ErrFlowNotFound) || errors.Is(err, addflow.ErrClosed) {
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "add-flow"), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapNavigationError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, navigation.ErrUnknownRoute) || errors.Is(err, navigation.ErrMissingParameter) {
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError maps application errors to problem responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError preserves transport-level failures as RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	responder.Respond(c, problem)
}

// bindPathParam reads a required path parameter.
func bindPathParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if strings.TrimSpace(value) == "" {
		respondError(c, http.StatusBadRequest, fmt.Errorf("parameter %s is required", name))
		return "", false
	}
	return value, true
}
