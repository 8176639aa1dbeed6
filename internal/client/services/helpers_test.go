package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// fakeClient implements client.Client for service tests. predict decides
// each answer; nil means an immediate empty object.
type fakeClient struct {
	mu      sync.Mutex
	calls   int
	lastImg models.UploadedImage
	predict func(ctx context.Context, img models.UploadedImage) (map[string]any, error)
	PingErr error
}

func (f *fakeClient) Predict(ctx context.Context, img models.UploadedImage) (map[string]any, error) {
	f.mu.Lock()
	f.calls++
	f.lastImg = img
	fn := f.predict
	f.mu.Unlock()

	if fn == nil {
		return map[string]any{}, nil
	}
	return fn(ctx, img)
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// blockingPredict returns a predict func that waits for release (answering
// body) or for ctx to end. started is signalled once the call is in flight.
func blockingPredict(started chan<- struct{}, release <-chan struct{}, body map[string]any) func(context.Context, models.UploadedImage) (map[string]any, error) {
	return func(ctx context.Context, _ models.UploadedImage) (map[string]any, error) {
		if started != nil {
			started <- struct{}{}
		}
		select {
		case <-release:
			return body, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func pngImage(t *testing.T, name string) models.UploadedImage {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))
	return models.UploadedImage{Name: name, ContentType: "image/png", Data: buf.Bytes(), Size: int64(buf.Len())}
}

func textFile(name string) models.UploadedImage {
	data := []byte("just some notes, not a scan")
	return models.UploadedImage{Name: name, ContentType: "text/plain", Data: data, Size: int64(len(data))}
}
