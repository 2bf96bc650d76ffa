package playlists

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+playlists\s*\(title,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+playlist_id,\s*created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"playlist_id", "created_at"}).AddRow(int64(4), now)
	mock.ExpectQuery(insertQ).WithArgs("RoadTrip", int64(7)).WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &Playlist{Title: "RoadTrip", UserID: 7})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 4 || got.Title != "RoadTrip" || got.UserID != 7 || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected playlist: %+v", got)
	}
}

func TestCreate_TitleConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "playlists_title_key"}
	mock.ExpectQuery(insertQ).WithArgs("RoadTrip", int64(7)).WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), &Playlist{Title: "RoadTrip", UserID: 7})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if err.Error() != "Title already exists" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreate_UserMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// нарушение внешнего ключа user_id
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "playlists_user_id_fkey"}
	mock.ExpectQuery(insertQ).WithArgs("RoadTrip", int64(999)).WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), &Playlist{Title: "RoadTrip", UserID: 999})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want conflict error, got %v", err)
	}
	if err.Error() != "User does not exist" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Playlist{Title: "RoadTrip", UserID: 7})
	if err == nil || errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+playlist_id,\s*title,\s*user_id,\s*created_at\s+FROM\s+playlists\s+WHERE\s+playlist_id\s*=\s*\$1\s*$`
	rows := sqlmock.NewRows([]string{"playlist_id", "title", "user_id", "created_at"}).
		AddRow(int64(4), "RoadTrip", int64(7), time.Now())
	mock.ExpectQuery(q).WithArgs(int64(4)).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "RoadTrip" || got.UserID != 7 {
		t.Fatalf("unexpected playlist: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+playlist_id,`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_Ordered(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+playlist_id,.*WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+playlist_id\s+ASC\s*$`
	rows := sqlmock.NewRows([]string{"playlist_id", "title", "user_id", "created_at"}).
		AddRow(int64(1), "Chill", int64(7), time.Now()).
		AddRow(int64(2), "Focus", int64(7), time.Now())
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"playlist_id", "title", "user_id", "created_at"})
	mock.ExpectQuery(`(?s)^SELECT\s+playlist_id,`).WithArgs(int64(7)).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}
