package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mriscan/internal/client/export"
	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/client/repositories/reports"
	"github.com/dmitrijs2005/mriscan/internal/common"
	"github.com/dmitrijs2005/mriscan/internal/filex"
	"github.com/dmitrijs2005/mriscan/internal/logging"
)

const unknownFileName = "unknown"

// ReportService saves, lists and exports analysis reports.
type ReportService struct {
	repo      reports.Repository
	exportDir string
	log       logging.Logger
	now       func() time.Time
	newID     func() string
}

func NewReportService(repo reports.Repository, exportDir string, log logging.Logger) *ReportService {
	return &ReportService{
		repo:      repo,
		exportDir: exportDir,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Build turns a draft into a report with a fresh id and the current time
// without storing it.
func (s *ReportService) Build(d models.ReportDraft) (models.Report, error) {
	if d.StageLabel == "" {
		return models.Report{}, common.NewValidationError("prediction", "is required")
	}
	if d.UserID == "" {
		d.UserID = models.AnonymousUserID
	}
	if d.FileName == "" {
		d.FileName = unknownFileName
	}

	r := models.Report{
		ID:           s.newID(),
		UserID:       d.UserID,
		FileName:     d.FileName,
		StageLabel:   d.StageLabel,
		Details:      d.Details,
		ImagePreview: d.ImagePreview,
		CreatedAt:    s.now(),
	}
	if d.Confidence != nil {
		c := *d.Confidence
		r.Confidence = &c
	}
	return r, nil
}

// Save stores a new report built from d and returns it.
func (s *ReportService) Save(ctx context.Context, d models.ReportDraft) (models.Report, error) {
	r, err := s.Build(d)
	if err != nil {
		return models.Report{}, err
	}

	if err := s.repo.Append(ctx, r); err != nil {
		return models.Report{}, fmt.Errorf("save report error: %w", err)
	}

	s.log.Info(ctx, "report saved", "id", r.ID, "user", r.UserID, "file", r.FileName)
	return r, nil
}

// ListByUser returns the reports of userID, newest first.
func (s *ReportService) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports error: %w", err)
	}
	slices.Reverse(list)
	slices.SortStableFunc(list, func(a, b models.Report) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list, nil
}

// Export renders r and writes it to <exportDir>/report-<id>.html. It
// returns the written path.
func (s *ReportService) Export(ctx context.Context, r models.Report) (string, error) {
	doc, err := export.HTML(r)
	if err != nil {
		return "", fmt.Errorf("export error: %w", err)
	}

	path, err := filex.WriteFileAtomic(s.exportDir, "report-"+r.ID+".html", doc)
	if err != nil {
		return "", fmt.Errorf("export error: %w", err)
	}

	s.log.Info(ctx, "report exported", "id", r.ID, "path", path)
	return path, nil
}
