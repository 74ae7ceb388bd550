package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/models"
	audiosrepo "github.com/clipforge/clipforge/internal/server/repositories/audios"
	plansrepo "github.com/clipforge/clipforge/internal/server/repositories/cuttingplans"
	jobsrepo "github.com/clipforge/clipforge/internal/server/repositories/exportjobs"
	projectsrepo "github.com/clipforge/clipforge/internal/server/repositories/projects"
	usersrepo "github.com/clipforge/clipforge/internal/server/repositories/users"
	videosrepo "github.com/clipforge/clipforge/internal/server/repositories/videos"
)

type fakeJobsRepo struct {
	jobs map[int64]*models.ExportJob
}

func (f *fakeJobsRepo) Create(ctx context.Context, j *models.ExportJob) (*models.ExportJob, error) {
	return j, nil
}

func (f *fakeJobsRepo) GetByID(ctx context.Context, id int64) (*models.ExportJob, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return j, nil
}

func (f *fakeJobsRepo) ListByCuttingPlan(ctx context.Context, planID int64, limit, offset int) ([]*models.ExportJob, error) {
	return nil, nil
}

func (f *fakeJobsRepo) Update(ctx context.Context, j *models.ExportJob) error {
	cp := *j
	f.jobs[j.ID] = &cp
	return nil
}

func (f *fakeJobsRepo) NextQueued(ctx context.Context) (*models.ExportJob, error) {
	for _, j := range f.jobs {
		if j.Status == models.ExportStatusQueued {
			j.Status = models.ExportStatusProcessing
			now := time.Now()
			j.StartedAt = &now
			cp := *j
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	j *fakeJobsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository           { return nil }
func (m *fakeRepoManager) Projects(dbx.DBTX) projectsrepo.Repository     { return nil }
func (m *fakeRepoManager) Videos(dbx.DBTX) videosrepo.Repository         { return nil }
func (m *fakeRepoManager) Audios(dbx.DBTX) audiosrepo.Repository         { return nil }
func (m *fakeRepoManager) CuttingPlans(dbx.DBTX) plansrepo.Repository    { return nil }
func (m *fakeRepoManager) ExportJobs(dbx.DBTX) jobsrepo.Repository       { return m.j }

type discardLogger struct{}

func (discardLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (discardLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (discardLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (discardLogger) Error(ctx context.Context, msg string, args ...any) {}
func (discardLogger) With(args ...any) logging.Logger                    { return discardLogger{} }

type failingRenderer struct{}

func (failingRenderer) Render(ctx context.Context, job *models.ExportJob) error {
	return errors.New("render crashed")
}

func queuedJob(id int64) *models.ExportJob {
	return &models.ExportJob{
		ID:            id,
		OutputFormat:  models.ExportFormatMP4,
		Resolution:    "1920x1080",
		Quality:       models.ExportQualityHigh,
		Status:        models.ExportStatusQueued,
		MaxRetries:    3,
		CuttingPlanID: 1,
		CreatedAt:     time.Now(),
	}
}

func TestDrain_CompletesQueuedJobs(t *testing.T) {
	repo := &fakeJobsRepo{jobs: map[int64]*models.ExportJob{
		1: queuedJob(1),
		2: queuedJob(2),
	}}
	w := NewExportWorker(nil, &fakeRepoManager{j: repo}, StubRenderer{}, discardLogger{})

	w.drain(context.Background())

	for id, j := range repo.jobs {
		if j.Status != models.ExportStatusCompleted {
			t.Fatalf("job %d: want completed, got %s", id, j.Status)
		}
		if j.OutputFilename == nil || j.CompletedAt == nil || j.ExpiresAt == nil {
			t.Fatalf("job %d: output fields not set: %+v", id, j)
		}
		if j.Progress != 100 {
			t.Fatalf("job %d: progress %v", id, j.Progress)
		}
	}
}

func TestDrain_RecordsFailure(t *testing.T) {
	repo := &fakeJobsRepo{jobs: map[int64]*models.ExportJob{1: queuedJob(1)}}
	w := NewExportWorker(nil, &fakeRepoManager{j: repo}, failingRenderer{}, discardLogger{})

	w.drain(context.Background())

	j := repo.jobs[1]
	if j.Status != models.ExportStatusFailed {
		t.Fatalf("want failed, got %s", j.Status)
	}
	if j.ErrorMessage == nil || *j.ErrorMessage != "render crashed" {
		t.Fatalf("unexpected error message: %v", j.ErrorMessage)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	repo := &fakeJobsRepo{jobs: map[int64]*models.ExportJob{}}
	w := NewExportWorker(nil, &fakeRepoManager{j: repo}, StubRenderer{}, discardLogger{})
	w.pollInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
