package doglistserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	doghttpmapper "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/http/mapper"
	dogsports "github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

// DefaultMaxWait caps how long GET /v1/add-flows/:flowId?wait=true blocks.
const DefaultMaxWait = 30 * time.Second

// AddFlowsAPI exposes the add-dog screen: the photo fetch and the form submit.
type AddFlowsAPI struct {
	sessions dogsports.AddFlowSessions
	maxWait  time.Duration
}

// NewAddFlowsAPI wires the flow registry. A non-positive maxWait uses DefaultMaxWait.
func NewAddFlowsAPI(sessions dogsports.AddFlowSessions, maxWait time.Duration) AddFlowsAPI {
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return AddFlowsAPI{sessions: sessions, maxWait: maxWait}
}

// Post /v1/add-flows
// Opens the add-dog screen and starts the photo fetch
func (api *AddFlowsAPI) OpenAddFlow(c *gin.Context) {
	id, flow, err := api.sessions.Open(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doghttpmapper.AddFlow{ID: id, State: doghttpmapper.FromFetchState(flow.State())})
}

// Get /v1/add-flows/:flowId
// Returns the photo fetch state, optionally waiting for it to settle
func (api *AddFlowsAPI) GetAddFlow(c *gin.Context) {
	id, flow, ok := api.lookup(c)
	if !ok {
		return
	}
	state := flow.State()
	if wait, _ := strconv.ParseBool(c.Query("wait")); wait && !state.Settled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), api.maxWait)
		defer cancel()
		waited, err := flow.Wait(ctx)
		switch {
		case err == nil:
			state = waited
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			state = flow.State()
		default:
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, doghttpmapper.AddFlow{ID: id, State: doghttpmapper.FromFetchState(state)})
}

// Post /v1/add-flows/:flowId/retry
// Discards the current photo and fetches a new one
func (api *AddFlowsAPI) RetryAddFlow(c *gin.Context) {
	id, flow, ok := api.lookup(c)
	if !ok {
		return
	}
	flow.Retry(c.Request.Context())
	c.JSON(http.StatusAccepted, doghttpmapper.AddFlow{ID: id, State: doghttpmapper.FromFetchState(flow.State())})
}

// Post /v1/add-flows/:flowId/submit
// Submits the add-dog form; the flow is closed once a dog was submitted
func (api *AddFlowsAPI) SubmitAddFlow(c *gin.Context) {
	id, flow, ok := api.lookup(c)
	if !ok {
		return
	}
	var payload doghttpmapper.SubmitForm
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, submitted, err := flow.Submit(c.Request.Context(), payload.Name, payload.Breed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if submitted {
		if err := api.sessions.Close(c.Request.Context(), id); err != nil && !errors.Is(err, dogsports.ErrFlowNotFound) {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, doghttpmapper.FromSubmit(result, submitted))
}

// Delete /v1/add-flows/:flowId
// Leaves the add-dog screen, cancelling any pending fetch
func (api *AddFlowsAPI) CloseAddFlow(c *gin.Context) {
	id, ok := bindFlowID(c)
	if !ok {
		return
	}
	if err := api.sessions.Close(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *AddFlowsAPI) lookup(c *gin.Context) (string, dogsports.AddFlow, bool) {
	id, ok := bindFlowID(c)
	if !ok {
		return "", nil, false
	}
	flow, err := api.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return "", nil, false
	}
	return id, flow, true
}

func bindFlowID(c *gin.Context) (string, bool) {
	raw, ok := bindPathParam(c, "flowId")
	if !ok {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("flowId must be a UUID: %w", err))
		return "", false
	}
	return id.String(), true
}
