package models

import "time"

type Video struct {
	ID               int64
	Filename         string
	OriginalFilename string
	Title            *string
	Description      *string

	ProjectID int64
	UserID    int64

	FilePath string
	FileSize int64
	MimeType string

	Duration float64
	Width    int
	Height   int
	FPS      float64
	Codec    string
	Bitrate  *int64

	Status FileStatus

	// Analysis results are opaque JSON written by the processing pipeline.
	AnalysisData []byte
	SceneCuts    []byte

	ProcessingTime *float64
	ErrorMessage   *string

	CreatedAt  time.Time
	UpdatedAt  *time.Time
	AnalyzedAt *time.Time
}
