package projects

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clipforge/clipforge/internal/common"
	"github.com/clipforge/clipforge/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func projectRow(id, userID int64, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "user_id", "project_type", "status",
		"timeline_data", "total_duration", "processing_progress", "created_at", "updated_at", "completed_at",
	}).AddRow(id, name, nil, userID, "custom", "draft", nil, 0.0, 0.0, time.Now(), nil, nil)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now())
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+projects`).
		WithArgs("Demo", nil, int64(1), "custom", "draft", nil).
		WillReturnRows(rows)

	p := &models.Project{Name: "Demo", UserID: 1, ProjectType: models.ProjectTypeCustom, Status: models.ProjectStatusDraft}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("unexpected project: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := projectRow(1, 7, "First")
	rows.AddRow(int64(2), "Second", nil, int64(7), "social", "draft", nil, 0.0, 0.0, time.Now(), nil, nil)

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+projects\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(int64(7), 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 7, 20, 0)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "First" || got[1].ProjectType != models.ProjectTypeSocial {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+projects\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(int64(7), 20, 0).
		WillReturnError(errors.New("db down"))

	_, err := repo.ListByUser(context.Background(), 7, 20, 0)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+projects`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	p := &models.Project{ID: 99, Name: "Gone", ProjectType: models.ProjectTypeCustom, Status: models.ProjectStatusDraft}
	err := repo.Update(context.Background(), p)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
