package models

import "time"

// ExportJob tracks one render of a cutting plan into a downloadable file.
// Ownership is derived through the cutting plan's creator.
type ExportJob struct {
	ID int64

	OutputFormat ExportFormat
	Resolution   string
	Quality      ExportQuality
	FPS          *float64
	Bitrate      *int64

	OutputFilename *string
	OutputPath     *string
	OutputSize     *int64
	DownloadURL    *string

	Status      ExportStatus
	Progress    float64
	CurrentStep *string

	ErrorMessage *string
	RetryCount   int
	MaxRetries   int

	CuttingPlanID int64

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	ExpiresAt   *time.Time
}

// CanRetry reports whether a failed job still has retry budget.
func (j *ExportJob) CanRetry() bool {
	return j.Status == ExportStatusFailed && j.RetryCount < j.MaxRetries
}
