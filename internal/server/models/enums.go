// Package models defines the server-side data model: users, projects,
// uploaded media files, cutting plans and export jobs.
package models

// Stable API values; stored as text, never as native DB enums.

type ProjectType string

const (
	ProjectTypeDynamic     ProjectType = "dynamic"
	ProjectTypeCinematic   ProjectType = "cinematic"
	ProjectTypeDocumentary ProjectType = "documentary"
	ProjectTypeSocial      ProjectType = "social"
	ProjectTypeCustom      ProjectType = "custom"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeDynamic, ProjectTypeCinematic, ProjectTypeDocumentary, ProjectTypeSocial, ProjectTypeCustom:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusProcessing ProjectStatus = "processing"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusFailed     ProjectStatus = "failed"
	ProjectStatusExported   ProjectStatus = "exported"
)

// FileStatus is the processing status shared by video and audio files.
type FileStatus string

const (
	FileStatusUploading  FileStatus = "UPLOADING"
	FileStatusUploaded   FileStatus = "UPLOADED"
	FileStatusProcessing FileStatus = "PROCESSING"
	FileStatusAnalyzed   FileStatus = "ANALYZED"
	FileStatusFailed     FileStatus = "FAILED"
)

type CuttingPlanStatus string

const (
	CuttingPlanStatusDraft      CuttingPlanStatus = "draft"
	CuttingPlanStatusApproved   CuttingPlanStatus = "approved"
	CuttingPlanStatusProcessing CuttingPlanStatus = "processing"
	CuttingPlanStatusCompleted  CuttingPlanStatus = "completed"
	CuttingPlanStatusFailed     CuttingPlanStatus = "failed"
)

type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "queued"
	ExportStatusProcessing ExportStatus = "processing"
	ExportStatusCompleted  ExportStatus = "completed"
	ExportStatusFailed     ExportStatus = "failed"
	ExportStatusCancelled  ExportStatus = "cancelled"
)

type ExportFormat string

const (
	ExportFormatMP4  ExportFormat = "mp4"
	ExportFormatMOV  ExportFormat = "mov"
	ExportFormatWebM ExportFormat = "webm"
	ExportFormatAVI  ExportFormat = "avi"
)

type ExportQuality string

const (
	ExportQualityLow    ExportQuality = "low"
	ExportQualityMedium ExportQuality = "medium"
	ExportQualityHigh   ExportQuality = "high"
	ExportQualityUltra  ExportQuality = "ultra"
)
