package httpapi

import (
	"encoding/json"
	"time"

	"github.com/clipforge/clipforge/internal/server/models"
)

type userResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type projectResponse struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	UserID             int64           `json:"user_id"`
	ProjectType        string          `json:"project_type"`
	Status             string          `json:"status"`
	TimelineData       json.RawMessage `json:"timeline_data"`
	TotalDuration      float64         `json:"total_duration"`
	ProcessingProgress float64         `json:"processing_progress"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          *time.Time      `json:"updated_at"`
	CompletedAt        *time.Time      `json:"completed_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		UserID:             p.UserID,
		ProjectType:        string(p.ProjectType),
		Status:             string(p.Status),
		TimelineData:       p.TimelineData,
		TotalDuration:      p.TotalDuration,
		ProcessingProgress: p.ProcessingProgress,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		CompletedAt:        p.CompletedAt,
	}
}

func toProjectResponses(ps []*models.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectResponse(p))
	}
	return out
}

type videoResponse struct {
	ID               int64      `json:"id"`
	Filename         string     `json:"filename"`
	OriginalFilename string     `json:"original_filename"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ProjectID        int64      `json:"project_id"`
	UserID           int64      `json:"user_id"`
	FileSize         int64      `json:"file_size"`
	MimeType         string     `json:"mime_type"`
	Duration         float64    `json:"duration"`
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	FPS              float64    `json:"fps"`
	Codec            string     `json:"codec"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	AnalyzedAt       *time.Time `json:"analyzed_at"`
}

func toVideoResponse(v *models.Video) videoResponse {
	return videoResponse{
		ID:               v.ID,
		Filename:         v.Filename,
		OriginalFilename: v.OriginalFilename,
		Title:            v.Title,
		Description:      v.Description,
		ProjectID:        v.ProjectID,
		UserID:           v.UserID,
		FileSize:         v.FileSize,
		MimeType:         v.MimeType,
		Duration:         v.Duration,
		Width:            v.Width,
		Height:           v.Height,
		FPS:              v.FPS,
		Codec:            v.Codec,
		Status:           string(v.Status),
		CreatedAt:        v.CreatedAt,
		AnalyzedAt:       v.AnalyzedAt,
	}
}

func toVideoResponses(vs []*models.Video) []videoResponse {
	out := make([]videoResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toVideoResponse(v))
	}
	return out
}

type audioResponse struct {
	ID               int64      `json:"id"`
	Filename         string     `json:"filename"`
	OriginalFilename string     `json:"original_filename"`
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	ProjectID        *int64     `json:"project_id"`
	UserID           int64      `json:"user_id"`
	FileSize         int64      `json:"file_size"`
	MimeType         string     `json:"mime_type"`
	Duration         float64    `json:"duration"`
	Codec            string     `json:"codec"`
	SampleRate       int        `json:"sample_rate"`
	Channels         int        `json:"channels"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	AnalyzedAt       *time.Time `json:"analyzed_at"`
}

func toAudioResponse(a *models.Audio) audioResponse {
	return audioResponse{
		ID:               a.ID,
		Filename:         a.Filename,
		OriginalFilename: a.OriginalFilename,
		Title:            a.Title,
		Description:      a.Description,
		ProjectID:        a.ProjectID,
		UserID:           a.UserID,
		FileSize:         a.FileSize,
		MimeType:         a.MimeType,
		Duration:         a.Duration,
		Codec:            a.Codec,
		SampleRate:       a.SampleRate,
		Channels:         a.Channels,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		AnalyzedAt:       a.AnalyzedAt,
	}
}

func toAudioResponses(as []*models.Audio) []audioResponse {
	out := make([]audioResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAudioResponse(a))
	}
	return out
}

type cuttingPlanResponse struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	CutsData           json.RawMessage `json:"cuts_data"`
	ExportSettings     json.RawMessage `json:"export_settings"`
	IsAIGenerated      bool            `json:"is_ai_generated"`
	ConfidenceScore    *float64        `json:"confidence_score"`
	Status             string          `json:"status"`
	ProcessingProgress float64         `json:"processing_progress"`
	ProjectID          int64           `json:"project_id"`
	VideoID            int64           `json:"video_id"`
	CreatedByID        int64           `json:"created_by_id"`
	CreatedAt          time.Time       `json:"created_at"`
	ApprovedAt         *time.Time      `json:"approved_at"`
}

func toCuttingPlanResponse(p *models.CuttingPlan) cuttingPlanResponse {
	return cuttingPlanResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		CutsData:           p.CutsData,
		ExportSettings:     p.ExportSettings,
		IsAIGenerated:      p.IsAIGenerated,
		ConfidenceScore:    p.ConfidenceScore,
		Status:             string(p.Status),
		ProcessingProgress: p.ProcessingProgress,
		ProjectID:          p.ProjectID,
		VideoID:            p.VideoID,
		CreatedByID:        p.CreatedByID,
		CreatedAt:          p.CreatedAt,
		ApprovedAt:         p.ApprovedAt,
	}
}

func toCuttingPlanResponses(ps []*models.CuttingPlan) []cuttingPlanResponse {
	out := make([]cuttingPlanResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toCuttingPlanResponse(p))
	}
	return out
}

type exportJobResponse struct {
	ID             int64      `json:"id"`
	OutputFormat   string     `json:"output_format"`
	Resolution     string     `json:"resolution"`
	Quality        string     `json:"quality"`
	FPS            *float64   `json:"fps"`
	Bitrate        *int64     `json:"bitrate"`
	OutputFilename *string    `json:"output_filename"`
	OutputSize     *int64     `json:"output_size"`
	DownloadURL    *string    `json:"download_url"`
	Status         string     `json:"status"`
	Progress       float64    `json:"progress"`
	CurrentStep    *string    `json:"current_step"`
	ErrorMessage   *string    `json:"error_message"`
	RetryCount     int        `json:"retry_count"`
	MaxRetries     int        `json:"max_retries"`
	CuttingPlanID  int64      `json:"cutting_plan_id"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func toExportJobResponse(j *models.ExportJob) exportJobResponse {
	return exportJobResponse{
		ID:             j.ID,
		OutputFormat:   string(j.OutputFormat),
		Resolution:     j.Resolution,
		Quality:        string(j.Quality),
		FPS:            j.FPS,
		Bitrate:        j.Bitrate,
		OutputFilename: j.OutputFilename,
		OutputSize:     j.OutputSize,
		DownloadURL:    j.DownloadURL,
		Status:         string(j.Status),
		Progress:       j.Progress,
		CurrentStep:    j.CurrentStep,
		ErrorMessage:   j.ErrorMessage,
		RetryCount:     j.RetryCount,
		MaxRetries:     j.MaxRetries,
		CuttingPlanID:  j.CuttingPlanID,
		CreatedAt:      j.CreatedAt,
		StartedAt:      j.StartedAt,
		CompletedAt:    j.CompletedAt,
		ExpiresAt:      j.ExpiresAt,
	}
}

func toExportJobResponses(js []*models.ExportJob) []exportJobResponse {
	out := make([]exportJobResponse, 0, len(js))
	for _, j := range js {
		out = append(out, toExportJobResponse(j))
	}
	return out
}
