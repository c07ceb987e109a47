package storage

import "youtube-insights/models"

// ReportWriter is the interface any report sink must satisfy.
type ReportWriter interface {
	WriteReport(report *models.Report) error
}

// RunWriter persists a run's normalized videos and market share and can
// read the stored videos back.
type RunWriter interface {
	Write(report *models.Report) error
	FetchVideos() ([]*models.Video, error)
	Close() error
}
