// Package models defines the client-side records: accounts and sessions,
// uploaded images, analysis results and saved reports.
package models
