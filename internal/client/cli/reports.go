package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
	"github.com/dmitrijs2005/mriscan/internal/common"
)

var (
	errNoResult       = common.NewValidationError("result", "run an analysis first")
	errReportNotFound = errors.New("report not found")
)

// currentDraft builds a report draft from the finished analysis.
func (a *App) currentDraft() (models.ReportDraft, error) {
	s := a.workflow.Snapshot()
	if s.State != models.StateResult || s.Result == nil {
		return models.ReportDraft{}, errNoResult
	}
	cur, _ := a.sessions.Current()
	return models.DraftFromResult(cur.Email, s.FileName, s.Preview, *s.Result), nil
}

// Save stores the current result as a report.
func (a *App) Save(ctx context.Context) error {
	d, err := a.currentDraft()
	if err != nil {
		return err
	}
	r, err := a.reports.Save(ctx, d)
	if err != nil {
		return err
	}
	a.lastReport = &r
	printlnFn("Report saved:", r.ID)
	return nil
}

// Export writes a report document. With an id it exports that saved report
// of the current user; without one it exports the current result, reusing
// the saved report when there is one.
func (a *App) Export(ctx context.Context, id string) error {
	var (
		r   models.Report
		err error
	)
	switch {
	case id != "":
		r, err = a.findReport(ctx, id)
	case a.lastReport != nil:
		r = *a.lastReport
	default:
		var d models.ReportDraft
		if d, err = a.currentDraft(); err == nil {
			r, err = a.reports.Build(d)
		}
	}
	if err != nil {
		return err
	}

	path, err := a.reports.Export(ctx, r)
	if err != nil {
		return err
	}
	printlnFn("Report written to", path)
	return nil
}

func (a *App) findReport(ctx context.Context, id string) (models.Report, error) {
	cur, ok := a.sessions.Current()
	if !ok {
		return models.Report{}, common.ErrUnauthenticated
	}
	list, err := a.reports.ListByUser(ctx, cur.Email)
	if err != nil {
		return models.Report{}, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Report{}, fmt.Errorf("%w: %s", errReportNotFound, id)
}

// Reports lists the current user's reports, newest first.
func (a *App) Reports(ctx context.Context) error {
	cur, ok := a.sessions.Current()
	if !ok {
		return common.ErrUnauthenticated
	}
	list, err := a.reports.ListByUser(ctx, cur.Email)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No reports yet")
		return nil
	}
	for _, r := range list {
		conf := "-"
		if r.Confidence != nil {
			conf = fmt.Sprintf("%.1f%%", *r.Confidence)
		}
		printlnFn(fmt.Sprintf("%s  %-14s  %-22s %6s  %s", r.ID, humanize.Time(r.CreatedAt), r.StageLabel, conf, r.FileName))
	}
	return nil
}
