package client

import (
	"context"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// Client talks to the remote inference endpoint.
type Client interface {
	// Predict uploads img and returns the decoded JSON object of the answer.
	Predict(ctx context.Context, img models.UploadedImage) (map[string]any, error)
	// Ping reports whether the endpoint host answers at all.
	Ping(ctx context.Context) error
	Close() error
}
