package models

import "time"

type Audio struct {
	ID               int64
	Filename         string
	OriginalFilename string
	Title            *string
	Description      *string

	// Audio files may exist outside a project (e.g. a music library).
	ProjectID *int64
	UserID    int64

	FilePath string
	FileSize int64
	MimeType string

	Duration   float64
	Codec      string
	Bitrate    *int64
	SampleRate int
	Channels   int

	Status FileStatus

	AnalysisData  []byte
	Transcription *string

	ProcessingTime *float64
	ErrorMessage   *string

	CreatedAt  time.Time
	UpdatedAt  *time.Time
	AnalyzedAt *time.Time
}
