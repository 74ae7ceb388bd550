package repomanager

import (
	"context"
	"database/sql"

	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/server/repositories/audios"
	"github.com/clipforge/clipforge/internal/server/repositories/cuttingplans"
	"github.com/clipforge/clipforge/internal/server/repositories/exportjobs"
	"github.com/clipforge/clipforge/internal/server/repositories/projects"
	"github.com/clipforge/clipforge/internal/server/repositories/users"
	"github.com/clipforge/clipforge/internal/server/repositories/videos"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Videos(db dbx.DBTX) videos.Repository
	Audios(db dbx.DBTX) audios.Repository
	CuttingPlans(db dbx.DBTX) cuttingplans.Repository
	ExportJobs(db dbx.DBTX) exportjobs.Repository
}
