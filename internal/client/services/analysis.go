package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/mriscan/internal/client/client"
	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/preview"
	"github.com/dmitrijs2005/mriscan/internal/common"
	"github.com/dmitrijs2005/mriscan/internal/logging"
)

var ErrWorkflowClosed = errors.New("analysis workflow closed")

// Snapshot is a copy of the workflow state for display. It never changes
// after it is handed out.
type Snapshot struct {
	State       models.State
	FileName    string
	FileSize    int64
	ContentType string
	PreviewID   string
	Preview     string
	Result      *models.AnalysisResult
	Err         string
}

// WorkflowOptions tunes an AnalysisWorkflow. Zero fields take defaults.
type WorkflowOptions struct {
	RequestTimeout time.Duration
	MaxUploadSize  int64
	// OnTransition, if set, receives a snapshot after every transition, in
	// transition order. It must not call back into mutating methods.
	OnTransition func(Snapshot)
}

const (
	defaultRequestTimeout = 60 * time.Second
	defaultMaxUploadSize  = 10 << 20
)

// AnalysisWorkflow drives one image through selection, submission and
// result interpretation. At most one request is in flight; leaving the
// Submitting state cancels it and its late answer is ignored.
type AnalysisWorkflow struct {
	client   client.Client
	previews *preview.Registry
	log      logging.Logger
	opts     WorkflowOptions

	mu     sync.Mutex
	hookMu sync.Mutex

	state  models.State
	image  *models.UploadedImage
	handle *preview.Handle
	result *models.AnalysisResult
	errMsg string

	gen    uint64
	cancel context.CancelFunc
	closed bool
}

func NewAnalysisWorkflow(c client.Client, previews *preview.Registry, log logging.Logger, opts WorkflowOptions) *AnalysisWorkflow {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	return &AnalysisWorkflow{client: c, previews: previews, log: log, opts: opts}
}

// SelectFile makes img the current file. Rejected files leave state and the
// existing preview untouched. Selecting while a request is in flight
// abandons that request.
func (w *AnalysisWorkflow) SelectFile(ctx context.Context, img models.UploadedImage) error {
	img, err := w.checkImage(img)
	if err != nil {
		w.log.Info(ctx, "file rejected", "file", img.Name, "error", err)
		return err
	}

	h := w.previews.Create(img)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		h.Release()
		return ErrWorkflowClosed
	}

	if w.state == models.StateSubmitting {
		w.log.Info(ctx, "abandoning in-flight analysis", "file", w.image.Name)
	}
	w.abandonLocked()
	w.handle.Release()

	w.image = &img
	w.handle = h
	w.result = nil
	w.errMsg = ""
	w.state = models.StateFileSelected

	w.log.Debug(ctx, "file selected", "file", img.Name, "type", img.ContentType, "size", img.Size)
	w.unlockAndNotify()
	return nil
}

func (w *AnalysisWorkflow) checkImage(img models.UploadedImage) (models.UploadedImage, error) {
	img.Size = int64(len(img.Data))
	if img.Size == 0 {
		return img, common.NewValidationError("file", "file is empty")
	}
	if img.Size > w.opts.MaxUploadSize {
		return img, common.NewValidationError("file",
			fmt.Sprintf("file is larger than %d MB", w.opts.MaxUploadSize>>20))
	}

	mediaType := img.ContentType
	if mediaType == "" {
		mediaType = mimetype.Detect(img.Data).String()
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return img, common.NewValidationError("file", "must be an image file")
	}
	img.ContentType = mediaType
	return img, nil
}

// RemoveFile returns to Idle and releases the preview. From Idle it does
// nothing.
func (w *AnalysisWorkflow) RemoveFile(ctx context.Context) {
	w.mu.Lock()
	if w.closed || w.state == models.StateIdle {
		w.mu.Unlock()
		return
	}

	w.abandonLocked()
	w.resetLocked()

	w.log.Debug(ctx, "file removed")
	w.unlockAndNotify()
}

// Submit sends the selected file for analysis and returns at once. The
// returned channel yields the snapshot the request ended in, or is closed
// without a value if the request was abandoned first.
func (w *AnalysisWorkflow) Submit(ctx context.Context) (<-chan Snapshot, error) {
	w.mu.Lock()
	switch {
	case w.closed:
		w.mu.Unlock()
		return nil, ErrWorkflowClosed
	case w.state == models.StateSubmitting:
		w.mu.Unlock()
		return nil, common.ErrSubmitInProgress
	case w.image == nil:
		w.mu.Unlock()
		return nil, common.NewValidationError("file", "select a file first")
	}

	w.gen++
	gen := w.gen
	reqCtx, cancel := context.WithTimeout(ctx, w.opts.RequestTimeout)
	w.cancel = cancel

	img := *w.image
	w.result = nil
	w.errMsg = ""
	w.state = models.StateSubmitting

	w.log.Info(ctx, "analysis submitted", "file", img.Name, "size", img.Size)
	w.unlockAndNotify()

	done := make(chan Snapshot, 1)
	go func() {
		defer cancel()
		body, err := w.client.Predict(reqCtx, img)
		w.complete(reqCtx, gen, body, err, done)
	}()
	return done, nil
}

func (w *AnalysisWorkflow) complete(ctx context.Context, gen uint64, body map[string]any, err error, done chan<- Snapshot) {
	defer close(done)

	w.mu.Lock()
	if gen != w.gen || w.state != models.StateSubmitting {
		w.mu.Unlock()
		w.log.Debug(ctx, "dropping stale analysis response", "generation", gen)
		return
	}
	w.cancel = nil

	if err != nil {
		w.state = models.StateError
		w.errMsg = describeFailure(err, w.opts.RequestTimeout)
		w.log.Warn(ctx, "analysis failed", "file", w.image.Name, "error", err)
	} else {
		res, clamped := InterpretPrediction(body)
		if clamped {
			w.log.Warn(ctx, "confidence out of range, clamped", "raw", body["confidence"], "value", *res.Confidence)
		}
		w.result = &res
		w.state = models.StateResult
		w.log.Info(ctx, "analysis complete", "file", w.image.Name, "stage", res.StageLabel)
	}

	done <- w.snapshotLocked()
	w.unlockAndNotify()
}

func describeFailure(err error, timeout time.Duration) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("request timed out after %s", timeout)
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return err.Error()
	}
}

// Snapshot returns the current state.
func (w *AnalysisWorkflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Close abandons any request and releases the preview. Further calls fail
// with ErrWorkflowClosed.
func (w *AnalysisWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.abandonLocked()
	w.resetLocked()
	w.closed = true
}

// abandonLocked cancels the in-flight request, if any, and invalidates its
// completion.
func (w *AnalysisWorkflow) abandonLocked() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.gen++
}

func (w *AnalysisWorkflow) resetLocked() {
	w.handle.Release()
	w.handle = nil
	w.image = nil
	w.result = nil
	w.errMsg = ""
	w.state = models.StateIdle
}

func (w *AnalysisWorkflow) snapshotLocked() Snapshot {
	s := Snapshot{State: w.state, Err: w.errMsg}
	if w.image != nil {
		s.FileName = w.image.Name
		s.FileSize = w.image.Size
		s.ContentType = w.image.ContentType
	}
	if w.handle != nil {
		s.PreviewID = w.handle.ID
		s.Preview = w.handle.DataURI
	}
	if w.result != nil {
		r := *w.result
		if r.Confidence != nil {
			c := *r.Confidence
			r.Confidence = &c
		}
		s.Result = &r
	}
	return s
}

// unlockAndNotify releases mu and delivers the new snapshot to the hook.
// hookMu is taken before mu is released so notifications keep transition
// order.
func (w *AnalysisWorkflow) unlockAndNotify() {
	hook := w.opts.OnTransition
	if hook == nil {
		w.mu.Unlock()
		return
	}
	s := w.snapshotLocked()
	w.hookMu.Lock()
	w.mu.Unlock()
	defer w.hookMu.Unlock()
	hook(s)
}

// InterpretPrediction maps an inference answer to a result. The stage label
// comes from "prediction" or else "result" (first non-empty string wins as is,
// "Unknown" if neither). Confidence is kept when numeric and clamped into
// [0,100]; clamped reports whether that changed it. Details come from
// "details" or else "description".
func InterpretPrediction(body map[string]any) (res models.AnalysisResult, clamped bool) {
	res.StageLabel = firstString(body, "prediction", "result")
	if res.StageLabel == "" {
		res.StageLabel = models.UnknownStage
	}
	res.Details = firstString(body, "details", "description")

	if c, ok := number(body["confidence"]); ok {
		v := min(max(c, 0), 100)
		clamped = v != c
		res.Confidence = &v
	}
	return res, clamped
}

func firstString(body map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := body[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
