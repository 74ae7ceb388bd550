package models

import "time"

type Project struct {
	ID          int64
	Name        string
	Description *string

	UserID int64

	ProjectType ProjectType
	Status      ProjectStatus

	// TimelineData is an opaque JSON document maintained by the editor UI.
	TimelineData []byte

	TotalDuration      float64
	ProcessingProgress float64

	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time
}
