package models

import "time"

// AnonymousUserID is stored when a report is saved without a user id.
const AnonymousUserID = "anonymous"

// ReportDraft is what the caller hands over when saving a result.
type ReportDraft struct {
	UserID       string
	FileName     string
	StageLabel   string
	Confidence   *float64
	Details      string
	ImagePreview string
}

// DraftFromResult builds a draft for userID out of a finished analysis.
func DraftFromResult(userID, fileName, preview string, r AnalysisResult) ReportDraft {
	return ReportDraft{
		UserID:       userID,
		FileName:     fileName,
		StageLabel:   r.StageLabel,
		Confidence:   r.Confidence,
		Details:      r.Details,
		ImagePreview: preview,
	}
}

// Report is an immutable saved analysis.
type Report struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FileName     string    `json:"fileName"`
	StageLabel   string    `json:"prediction"`
	Confidence   *float64  `json:"confidence,omitempty"`
	Details      string    `json:"details,omitempty"`
	ImagePreview string    `json:"imagePreview,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
