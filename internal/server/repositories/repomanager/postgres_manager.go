package repomanager

import (
	"context"
	"database/sql"

	"github.com/clipforge/clipforge/internal/dbx"
	"github.com/clipforge/clipforge/internal/server/migrations"
	"github.com/clipforge/clipforge/internal/server/repositories/audios"
	"github.com/clipforge/clipforge/internal/server/repositories/cuttingplans"
	"github.com/clipforge/clipforge/internal/server/repositories/exportjobs"
	"github.com/clipforge/clipforge/internal/server/repositories/projects"
	"github.com/clipforge/clipforge/internal/server/repositories/users"
	"github.com/clipforge/clipforge/internal/server/repositories/videos"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Videos(db dbx.DBTX) videos.Repository {
	return videos.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Audios(db dbx.DBTX) audios.Repository {
	return audios.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) CuttingPlans(db dbx.DBTX) cuttingplans.Repository {
	return cuttingplans.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) ExportJobs(db dbx.DBTX) exportjobs.Repository {
	return exportjobs.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
