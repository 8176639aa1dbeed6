// Package export renders saved reports as standalone documents.
package export

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrijs2005/mriscan/internal/client/models"
)

// Disclaimer is printed at the bottom of every exported report.
const Disclaimer = "Note: This AI prediction is meant to assist medical professionals and " +
	"should not be used as a sole basis for diagnosis. Please consult with " +
	"a qualified healthcare provider for clinical decisions."

const timeLayout = "January 2, 2006 15:04 MST"

var strict = bluemonday.StrictPolicy()

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MRI Analysis Report {{.ID}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #222; }
dt { font-weight: bold; margin-top: 1em; }
.note { margin-top: 2em; font-style: italic; color: #555; }
</style>
</head>
<body>
<h1>MRI Analysis Report</h1>
<dl>
<dt>Report ID</dt><dd>{{.ID}}</dd>
<dt>Patient / User</dt><dd>{{.UserID}}</dd>
<dt>File</dt><dd>{{.FileName}}</dd>
<dt>Date</dt><dd><time datetime="{{.ISOTime}}">{{.Time}}</time></dd>
<dt>Prediction</dt><dd class="prediction">{{.StageLabel}}</dd>
{{- if .Confidence}}
<dt>Confidence</dt><dd class="confidence">{{.Confidence}}</dd>
{{- end}}
{{- if .Details}}
<dt>Details</dt><dd class="details">{{.Details}}</dd>
{{- end}}
</dl>
{{- if .Preview}}
<img alt="MRI scan preview" src="{{.Preview}}">
{{- end}}
<p class="note">{{.Disclaimer}}</p>
</body>
</html>
`))

type view struct {
	ID         string
	UserID     string
	FileName   string
	Time       string
	ISOTime    string
	StageLabel string
	Confidence string
	Details    string
	Preview    template.URL
	Disclaimer string
}

// HTML renders r as a self-contained HTML document. Every populated field of
// r appears in the output; optional fields that are empty are left out.
func HTML(r models.Report) ([]byte, error) {
	v := view{
		ID:         r.ID,
		UserID:     r.UserID,
		FileName:   r.FileName,
		Time:       r.CreatedAt.Format(timeLayout),
		ISOTime:    r.CreatedAt.Format(time.RFC3339),
		StageLabel: r.StageLabel,
		Details:    plain(r.Details),
		Disclaimer: Disclaimer,
	}
	if r.Confidence != nil {
		v.Confidence = FormatConfidence(*r.Confidence)
	}
	// only our own thumbnails are embedded
	if strings.HasPrefix(r.ImagePreview, "data:image/") {
		v.Preview = template.URL(r.ImagePreview)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render report %s: %w", r.ID, err)
	}
	return buf.Bytes(), nil
}

// FormatConfidence prints a percentage with one decimal, e.g. "91.0%".
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c)
}

// plain strips any markup from remote text. The template escapes again, so
// entities produced by the policy are decoded first.
func plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
