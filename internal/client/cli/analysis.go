package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mriscan/internal/client/export"
	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/services"
)

// loadImage is a test seam for reading the selected file.
var loadImage = models.LoadImage

// Select reads the image at path and makes it the current file.
func (a *App) Select(ctx context.Context, path string) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}
	if err := a.workflow.SelectFile(ctx, img); err != nil {
		return err
	}
	a.lastReport = nil
	return nil
}

// Remove drops the selected image and any result.
func (a *App) Remove(ctx context.Context) error {
	a.workflow.RemoveFile(ctx)
	a.lastReport = nil
	return nil
}

// Analyze submits the selected image. The outcome is announced by notify
// when it arrives.
func (a *App) Analyze(ctx context.Context) error {
	if _, err := a.workflow.Submit(ctx); err != nil {
		return err
	}
	a.lastReport = nil
	return nil
}

// Status prints the current analysis snapshot.
func (a *App) Status(ctx context.Context) error {
	for _, line := range describe(a.workflow.Snapshot()) {
		printlnFn(line)
	}
	return nil
}

// notify is the workflow transition hook. It prints a one-line toast for
// the states the user is waiting on.
func (a *App) notify(s services.Snapshot) {
	switch s.State {
	case models.StateFileSelected:
		printlnFn(fmt.Sprintf("Selected %s (%s)", s.FileName, humanize.Bytes(uint64(s.FileSize))))
	case models.StateSubmitting:
		printlnFn(fmt.Sprintf("Analyzing %s...", s.FileName))
	case models.StateResult:
		printlnFn("Analysis complete: " + resultLine(s.Result))
	case models.StateError:
		printlnFn("Analysis failed: " + s.Err)
	}
}

func describe(s services.Snapshot) []string {
	lines := []string{"State: " + s.State.String()}
	if s.FileName != "" {
		lines = append(lines, fmt.Sprintf("File: %s (%s, %s)", s.FileName, s.ContentType, humanize.Bytes(uint64(s.FileSize))))
	}
	if s.Preview != "" {
		lines = append(lines, "Preview: ready")
	}
	if s.Result != nil {
		lines = append(lines, "Prediction: "+resultLine(s.Result))
		if s.Result.Details != "" {
			lines = append(lines, "Details: "+s.Result.Details)
		}
		lines = append(lines, export.Disclaimer)
	}
	if s.Err != "" {
		lines = append(lines, "Error: "+s.Err)
	}
	return lines
}

func resultLine(r *models.AnalysisResult) string {
	if r == nil {
		return ""
	}
	if r.Confidence == nil {
		return r.StageLabel
	}
	return fmt.Sprintf("%s (%s)", r.StageLabel, export.FormatConfidence(*r.Confidence))
}
