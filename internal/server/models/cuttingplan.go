package models

import "time"

// CuttingPlan is an AI-proposed (or manually drafted) list of cut segments
// for one video of a project.
type CuttingPlan struct {
	ID          int64
	Name        string
	Description *string

	// CutsData is a JSON list of segments {start_time, end_time, confidence}.
	CutsData       []byte
	ExportSettings []byte

	IsAIGenerated   bool
	ConfidenceScore *float64

	Status             CuttingPlanStatus
	ProcessingProgress float64

	ErrorMessage *string

	ProjectID   int64
	VideoID     int64
	CreatedByID int64

	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ApprovedAt  *time.Time
	CompletedAt *time.Time
}
