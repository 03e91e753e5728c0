package dogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the public Dog CEO API root.
const DefaultBaseURL = "https://dog.ceo/api"

// DefaultTimeout bounds a single request when no client is supplied.
const DefaultTimeout = 10 * time.Second

// RandomImageResponse is the payload of the random image endpoints.
type RandomImageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("dog api returned %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("dog api returned %s", e.Status)
}

// Client calls the Dog CEO image endpoints.
type Client struct {
	server *url.URL
	http   *http.Client
}

// NewClient builds a client for baseURL. A nil httpClient gets an instrumented default with
// DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("dog api base URL is required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	server, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse dog api base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{server: server, http: httpClient}, nil
}

// RandomImage calls GET /breeds/image/random.
func (c *Client) RandomImage(ctx context.Context) (*RandomImageResponse, error) {
	return c.get(ctx, "./breeds/image/random")
}

// RandomBreedImage calls GET /breed/{breed}/images/random.
func (c *Client) RandomBreedImage(ctx context.Context, breed string) (*RandomImageResponse, error) {
	breed = strings.ToLower(strings.TrimSpace(breed))
	if breed == "" {
		return nil, errors.New("breed is required")
	}
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "breed", runtime.ParamLocationPath, breed)
	if err != nil {
		return nil, fmt.Errorf("encode breed: %w", err)
	}
	return c.get(ctx, fmt.Sprintf("./breed/%s/images/random", pathParam))
}

func (c *Client) get(ctx context.Context, operationPath string) (*RandomImageResponse, error) {
	if c == nil || c.server == nil {
		return nil, errors.New("dog api client not configured")
	}
	queryURL, err := c.server.Parse(operationPath)
	if err != nil {
		return nil, fmt.Errorf("build dog api URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build dog api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call dog api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read dog api response: %w", err)
	}
	var payload RandomImageResponse
	decodeErr := json.Unmarshal(body, &payload)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		if decodeErr == nil {
			statusErr.Message = payload.Message
		}
		return nil, statusErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode dog api response: %w", decodeErr)
	}
	return &payload, nil
}
