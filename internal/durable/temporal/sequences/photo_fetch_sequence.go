package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	dogactivities "github.com/Apurer/go-gin-doglist/internal/durable/temporal/activities/dogs"
)

// PhotoFetchTimeout bounds one activity attempt.
const PhotoFetchTimeout = 30 * time.Second

// RunPhotoFetchSequence executes the random photo activity exactly once. Retries are driven by
// the user from the add-dog screen, never by the workflow.
func RunPhotoFetchSequence(ctx workflow.Context) (*domain.DogPhoto, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("photo fetch sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: PhotoFetchTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var photo domain.DogPhoto
	if err := workflow.ExecuteActivity(ctx, dogactivities.FetchRandomPhotoActivityName).Get(ctx, &photo); err != nil {
		logger.Error("photo fetch sequence failed", "error", err)
		return nil, err
	}
	logger.Info("photo fetch sequence completed", "url", photo.URL())
	return &photo, nil
}
