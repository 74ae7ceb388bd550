// Package tasks runs background processing for export jobs. Rendering
// itself happens in an external pipeline; this worker drives job state.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/models"
	"github.com/clipforge/clipforge/internal/server/repositories/repomanager"
)

const downloadExpiry = 24 * time.Hour

// Renderer produces the output file for a claimed job and fills in the
// output fields. The bundled stub completes jobs immediately.
type Renderer interface {
	Render(ctx context.Context, job *models.ExportJob) error
}

type ExportWorker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	renderer    Renderer
	logger      logging.Logger

	pollInterval time.Duration
}

func NewExportWorker(db *sql.DB, m repomanager.RepositoryManager, renderer Renderer, logger logging.Logger) *ExportWorker {
	return &ExportWorker{
		db:           db,
		repomanager:  m,
		renderer:     renderer,
		logger:       logger,
		pollInterval: 5 * time.Second,
	}
}

// Run polls the queue until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain claims and processes jobs until the queue is empty.
func (w *ExportWorker) drain(ctx context.Context) {
	repo := w.repomanager.ExportJobs(w.db)

	for {
		job, err := repo.NextQueued(ctx)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				w.logger.Error(ctx, "failed to claim export job", "error", err)
			}
			return
		}

		w.process(ctx, job)
	}
}

func (w *ExportWorker) process(ctx context.Context, job *models.ExportJob) {
	repo := w.repomanager.ExportJobs(w.db)

	w.logger.Info(ctx, "processing export job", "job_id", job.ID, "format", job.OutputFormat)

	if err := w.renderer.Render(ctx, job); err != nil {
		now := time.Now().UTC()
		msg := err.Error()
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = &msg
		job.CompletedAt = &now

		if uerr := repo.Update(ctx, job); uerr != nil {
			w.logger.Error(ctx, "failed to record export failure", "job_id", job.ID, "error", uerr)
		}
		return
	}

	now := time.Now().UTC()
	expires := now.Add(downloadExpiry)
	job.Status = models.ExportStatusCompleted
	job.Progress = 100
	job.CompletedAt = &now
	job.ExpiresAt = &expires

	if err := repo.Update(ctx, job); err != nil {
		w.logger.Error(ctx, "failed to record export completion", "job_id", job.ID, "error", err)
		return
	}

	w.logger.Info(ctx, "export job completed", "job_id", job.ID)
}

// StubRenderer fills output metadata without producing real media. It keeps
// the queue flowing in environments without the rendering pipeline.
type StubRenderer struct{}

func (StubRenderer) Render(ctx context.Context, job *models.ExportJob) error {
	name := fmt.Sprintf("export_%d.%s", job.ID, job.OutputFormat)
	path := fmt.Sprintf("exports/%s", name)
	job.OutputFilename = &name
	job.OutputPath = &path
	return nil
}
