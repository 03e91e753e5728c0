package api

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	dogapiclient "github.com/Apurer/go-gin-doglist/internal/clients/http/dogapi"
	dogsmemory "github.com/Apurer/go-gin-doglist/internal/domains/dogs/adapters/memory"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	DogAPIBaseURL     string
	DogAPITimeout     time.Duration
	DogAPIBreed       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	// TemporalWorkflowTimeout caps one photo fetch workflow, time spent queued for a worker included.
	TemporalWorkflowTimeout time.Duration
	AddFlowTTL              time.Duration
}

// fileConfig is the optional YAML overlay named by DOGLIST_CONFIG_FILE. Environment variables
// take precedence over it.
type fileConfig struct {
	Port   string `yaml:"port"`
	DogAPI struct {
		BaseURL        string `yaml:"baseUrl"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
		Breed          string `yaml:"breed"`
	} `yaml:"dogApi"`
	Temporal struct {
		Address   string `yaml:"address"`
		Namespace string `yaml:"namespace"`
		Disabled  bool   `yaml:"disabled"`
		// WorkflowTimeoutSeconds defaults to twice the dog API timeout.
		WorkflowTimeoutSeconds int `yaml:"workflowTimeoutSeconds"`
	} `yaml:"temporal"`
	AddFlow struct {
		TTLMinutes int `yaml:"ttlMinutes"`
	} `yaml:"addFlow"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	file, err := loadConfigFile(strings.TrimSpace(os.Getenv("DOGLIST_CONFIG_FILE")))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:              envDefault("PORT", orDefault(file.Port, "8080")),
		DogAPIBaseURL:     envDefault("DOG_API_BASE_URL", orDefault(file.DogAPI.BaseURL, dogapiclient.DefaultBaseURL)),
		DogAPIBreed:       envDefault("DOG_API_BREED", file.DogAPI.Breed),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", orDefault(file.Temporal.Address, client.DefaultHostPort)),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", orDefault(file.Temporal.Namespace, client.DefaultNamespace)),
		TemporalDisabled:  file.Temporal.Disabled,
	}
	if raw, ok := os.LookupEnv("TEMPORAL_DISABLED"); ok && strings.TrimSpace(raw) != "" {
		cfg.TemporalDisabled = isTruthy(raw)
	}
	if err := validateBaseURL(cfg.DogAPIBaseURL); err != nil {
		return Config{}, err
	}
	timeoutSeconds, err := positiveInt("DOG_API_TIMEOUT_SECONDS", file.DogAPI.TimeoutSeconds, int(dogapiclient.DefaultTimeout/time.Second))
	if err != nil {
		return Config{}, err
	}
	cfg.DogAPITimeout = time.Duration(timeoutSeconds) * time.Second
	workflowSeconds, err := positiveInt("TEMPORAL_WORKFLOW_TIMEOUT_SECONDS", file.Temporal.WorkflowTimeoutSeconds, 2*timeoutSeconds)
	if err != nil {
		return Config{}, err
	}
	cfg.TemporalWorkflowTimeout = time.Duration(workflowSeconds) * time.Second
	ttlMinutes, err := positiveInt("ADD_FLOW_TTL_MINUTES", file.AddFlow.TTLMinutes, int(dogsmemory.DefaultFlowTTL/time.Minute))
	if err != nil {
		return Config{}, err
	}
	cfg.AddFlowTTL = time.Duration(ttlMinutes) * time.Minute
	return cfg, nil
}

func loadConfigFile(path string) (fileConfig, error) {
	var file fileConfig
	if path == "" {
		return file, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read DOGLIST_CONFIG_FILE: %w", err)
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse DOGLIST_CONFIG_FILE: %w", err)
	}
	return file, nil
}

func validateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("DOG_API_BASE_URL must be an absolute http(s) URL")
	}
	return nil
}

func positiveInt(key string, fileValue, fallback int) (int, error) {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return 0, fmt.Errorf("%s must be a positive integer", key)
		}
		return value, nil
	}
	if fileValue < 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	if fileValue > 0 {
		return fileValue, nil
	}
	return fallback, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
