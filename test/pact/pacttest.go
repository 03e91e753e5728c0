//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "doglist-api"
	ConsumerName = "doglist-app"

	// DogCEOProviderName is the public photo API consumed by doglist-api.
	DogCEOProviderName = "dog-ceo"

	StateDogsBaseline = "no dogs are listed"
	StateDogExists    = "dog Rex is listed"
	StateDogMissing   = "no dog named Ghost"

	StateRandomImage = "random images are available"
	StateBreedImage  = "the husky breed has images"
)

const (
	ExistingDogName = "Rex"
	ExistingBreed   = "Husky"
	MissingDogName  = "Ghost"

	ExampleImageURL = "https://images.dog.ceo/breeds/husky/n02110185_1469.jpg"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the app consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleDogPayload provides stable test data for pact interactions.
func ExampleDogPayload() map[string]any {
	return map[string]any{
		"name":     ExistingDogName,
		"breed":    ExistingBreed,
		"imageUrl": ExampleImageURL,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
