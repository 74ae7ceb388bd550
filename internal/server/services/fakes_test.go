package services

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"time"

	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/logging"
	"github.com/clipforge/clipforge/internal/server/config"
	"github.com/clipforge/clipforge/internal/server/models"
	audiosrepo "github.com/clipforge/clipforge/internal/server/repositories/audios"
	plansrepo "github.com/clipforge/clipforge/internal/server/repositories/cuttingplans"
	jobsrepo "github.com/clipforge/clipforge/internal/server/repositories/exportjobs"
	projectsrepo "github.com/clipforge/clipforge/internal/server/repositories/projects"
	usersrepo "github.com/clipforge/clipforge/internal/server/repositories/users"
	videosrepo "github.com/clipforge/clipforge/internal/server/repositories/videos"
)

// --- in-memory fakes ---

type fakeUsersRepo struct {
	users map[int64]*models.User

	nextID int64

	updateLastLoginErr   error
	updateLastLoginCalls int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	f.updateLastLoginCalls++
	if f.updateLastLoginErr != nil {
		return f.updateLastLoginErr
	}
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type fakeProjectsRepo struct {
	projects map[int64]*models.Project
	nextID   int64
}

func newFakeProjectsRepo() *fakeProjectsRepo {
	return &fakeProjectsRepo{projects: map[int64]*models.Project{}, nextID: 1}
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeProjectsRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectsRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProjectsRepo) Update(ctx context.Context, p *models.Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.projects[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeVideosRepo struct {
	videos map[int64]*models.Video
	nextID int64

	createErr error
}

func newFakeVideosRepo() *fakeVideosRepo {
	return &fakeVideosRepo{videos: map[int64]*models.Video{}, nextID: 1}
}

func (f *fakeVideosRepo) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	v.ID = f.nextID
	f.nextID++
	v.CreatedAt = time.Now()
	f.videos[v.ID] = v
	return v, nil
}

func (f *fakeVideosRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideosRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range f.videos {
		if v.ProjectID == projectID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeVideosRepo) UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error {
	v, ok := f.videos[id]
	if !ok {
		return common.ErrorNotFound
	}
	v.Status = status
	v.ErrorMessage = errorMessage
	return nil
}

func (f *fakeVideosRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.videos[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.videos, id)
	return nil
}

type fakeAudiosRepo struct {
	audios map[int64]*models.Audio
	nextID int64
}

func newFakeAudiosRepo() *fakeAudiosRepo {
	return &fakeAudiosRepo{audios: map[int64]*models.Audio{}, nextID: 1}
}

func (f *fakeAudiosRepo) Create(ctx context.Context, a *models.Audio) (*models.Audio, error) {
	a.ID = f.nextID
	f.nextID++
	a.CreatedAt = time.Now()
	f.audios[a.ID] = a
	return a, nil
}

func (f *fakeAudiosRepo) GetByID(ctx context.Context, id int64) (*models.Audio, error) {
	a, ok := f.audios[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAudiosRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Audio, error) {
	var out []*models.Audio
	for _, a := range f.audios {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAudiosRepo) UpdateStatus(ctx context.Context, id int64, status models.FileStatus, errorMessage *string) error {
	a, ok := f.audios[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Status = status
	a.ErrorMessage = errorMessage
	return nil
}

func (f *fakeAudiosRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.audios[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.audios, id)
	return nil
}

type fakePlansRepo struct {
	plans  map[int64]*models.CuttingPlan
	nextID int64
}

func newFakePlansRepo() *fakePlansRepo {
	return &fakePlansRepo{plans: map[int64]*models.CuttingPlan{}, nextID: 1}
}

func (f *fakePlansRepo) Create(ctx context.Context, p *models.CuttingPlan) (*models.CuttingPlan, error) {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.plans[p.ID] = p
	return p, nil
}

func (f *fakePlansRepo) GetByID(ctx context.Context, id int64) (*models.CuttingPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlansRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*models.CuttingPlan, error) {
	var out []*models.CuttingPlan
	for _, p := range f.plans {
		if p.ProjectID == projectID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePlansRepo) Update(ctx context.Context, p *models.CuttingPlan) error {
	if _, ok := f.plans[p.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *p
	f.plans[p.ID] = &cp
	return nil
}

func (f *fakePlansRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.plans[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.plans, id)
	return nil
}

type fakeJobsRepo struct {
	jobs   map[int64]*models.ExportJob
	nextID int64
}

func newFakeJobsRepo() *fakeJobsRepo {
	return &fakeJobsRepo{jobs: map[int64]*models.ExportJob{}, nextID: 1}
}

func (f *fakeJobsRepo) Create(ctx context.Context, j *models.ExportJob) (*models.ExportJob, error) {
	j.ID = f.nextID
	f.nextID++
	j.CreatedAt = time.Now()
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobsRepo) GetByID(ctx context.Context, id int64) (*models.ExportJob, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobsRepo) ListByCuttingPlan(ctx context.Context, planID int64, limit, offset int) ([]*models.ExportJob, error) {
	var out []*models.ExportJob
	for _, j := range f.jobs {
		if j.CuttingPlanID == planID {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobsRepo) Update(ctx context.Context, j *models.ExportJob) error {
	if _, ok := f.jobs[j.ID]; !ok {
		return common.ErrorNotFound
	}
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
	u *fakeUsersRepo
	p *fakeProjectsRepo
	v *fakeVideosRepo
	a *fakeAudiosRepo
	c *fakePlansRepo
	j *fakeJobsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		p: newFakeProjectsRepo(),
		v: newFakeVideosRepo(),
		a: newFakeAudiosRepo(),
		c: newFakePlansRepo(),
		j: newFakeJobsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository        { return m.u }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projectsrepo.Repository  { return m.p }
func (m *fakeRepoManager) Videos(db dbx.DBTX) videosrepo.Repository      { return m.v }
func (m *fakeRepoManager) Audios(db dbx.DBTX) audiosrepo.Repository      { return m.a }
func (m *fakeRepoManager) CuttingPlans(db dbx.DBTX) plansrepo.Repository { return m.c }
func (m *fakeRepoManager) ExportJobs(db dbx.DBTX) jobsrepo.Repository    { return m.j }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

// fakeStorage keeps object bytes in a map.
type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeStorage) URL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

// discardLogger drops everything.
type discardLogger struct{}

func (discardLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (discardLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (discardLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (discardLogger) Error(ctx context.Context, msg string, args ...any) {}
func (discardLogger) With(args ...any) logging.Logger                    { return discardLogger{} }
