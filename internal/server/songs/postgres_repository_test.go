package songs

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/musicbox/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

var songCols = []string{
	"song_id", "title", "duration", "url_file", "cover_image_url", "thumbnail_url",
	"genre", "language", "lyrics", "spotify_track_id", "spotify_track_uri",
	"spotify_track_url", "spotify_preview_url",
}

func songRow(id int64, title string) *sqlmock.Rows {
	return sqlmock.NewRows(songCols).
		AddRow(id, title, "00:03:25", nil, nil, nil, "Rock", nil, nil, nil, nil, nil, nil)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+songs\s*\(title,\s*duration,\s*url_file,.*spotify_preview_url\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+song_id\s*$`
	rows := sqlmock.NewRows([]string{"song_id"}).AddRow(int64(7))
	mock.ExpectQuery(q).
		WithArgs("Hello", "00:03:25", "https://cdn.example.com/a.mp3", nil, nil, nil, nil, nil, nil, nil, nil, nil).
		WillReturnRows(rows)

	song := &Song{
		Title:    strPtr("Hello"),
		Duration: strPtr("00:03:25"),
		URLFile:  strPtr("https://cdn.example.com/a.mp3"),
	}
	got, err := repo.Create(context.Background(), song)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+songs`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Song{})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+song_id,\s*title,.*FROM\s+songs\s+WHERE\s+song_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(songRow(7, "Hello"))

	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != 7 || *got.Title != "Hello" || *got.Genre != "Rock" || got.Lyrics != nil {
		t.Fatalf("unexpected song: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+song_id,.*WHERE\s+song_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_NoFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+song_id,.*FROM\s+songs\s+ORDER\s+BY\s+song_id\s+DESC\s+LIMIT\s+\$1\s+OFFSET\s+\$2\s*$`
	rows := sqlmock.NewRows(songCols).
		AddRow(int64(2), "B", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil).
		AddRow(int64(1), "A", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(q).WithArgs(20, 0).WillReturnRows(rows)

	got, err := repo.List(context.Background(), Filter{Limit: 20, Offset: 0})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestList_FilterCombo(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// q ищет по трём колонкам одним параметром, genre добавляет второй
	q := `(?s)^SELECT\s+song_id,.*FROM\s+songs\s+WHERE\s+\(title\s+ILIKE\s+\$1\s+OR\s+genre\s+ILIKE\s+\$1\s+OR\s+language\s+ILIKE\s+\$1\)\s+AND\s+genre\s+ILIKE\s+\$2\s+AND\s+spotify_preview_url\s+IS\s+NOT\s+NULL\s+AND\s+spotify_preview_url\s+<>\s+''\s+ORDER\s+BY\s+song_id\s+DESC\s+LIMIT\s+\$3\s+OFFSET\s+\$4\s*$`
	mock.ExpectQuery(q).
		WithArgs("%love%", "%rock%", 10, 10).
		WillReturnRows(sqlmock.NewRows(songCols))

	hasPreview := true
	_, err := repo.List(context.Background(), Filter{
		Query:      "love",
		Genre:      "rock",
		HasPreview: &hasPreview,
		Limit:      10,
		Offset:     10,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestList_NoPreviewFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+\(spotify_preview_url\s+IS\s+NULL\s+OR\s+spotify_preview_url\s+=\s+''\)`
	mock.ExpectQuery(q).WithArgs(20, 0).WillReturnRows(sqlmock.NewRows(songCols))

	hasPreview := false
	_, err := repo.List(context.Background(), Filter{HasPreview: &hasPreview, Limit: 20})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
}

func TestList_SortMapping(t *testing.T) {
	tests := []struct {
		sort  string
		order string
	}{
		{"id_asc", `ORDER\s+BY\s+song_id\s+ASC`},
		{"title_asc", `ORDER\s+BY\s+title\s+ASC`},
		{"title_desc", `ORDER\s+BY\s+title\s+DESC`},
		{"TITLE_ASC", `ORDER\s+BY\s+title\s+ASC`},
		{"bogus", `ORDER\s+BY\s+song_id\s+DESC`},
		{"", `ORDER\s+BY\s+song_id\s+DESC`},
	}

	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectQuery(`(?s)` + tt.order).WithArgs(20, 0).WillReturnRows(sqlmock.NewRows(songCols))

			if _, err := repo.List(context.Background(), Filter{Sort: tt.sort, Limit: 20}); err != nil {
				t.Fatalf("List error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("sql expectations: %v", err)
			}
		})
	}
}

func TestUpdate_SetAndClear(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+songs\s+SET\s+title\s*=\s*\$1,\s*genre\s*=\s*\$2\s+WHERE\s+song_id\s*=\s*\$3\s+RETURNING\s+song_id,.*$`
	mock.ExpectQuery(q).
		WithArgs("New Title", nil, int64(5)).
		WillReturnRows(songRow(5, "New Title"))

	upd := &Update{
		Title: &sql.Null[string]{V: "New Title", Valid: true},
		Genre: &sql.Null[string]{}, // сбрасываем в NULL
	}
	got, err := repo.Update(context.Background(), 5, upd)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if *got.Title != "New Title" {
		t.Fatalf("unexpected song: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpdate_EmptyReturnsCurrentRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+song_id,.*WHERE\s+song_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(int64(5)).WillReturnRows(songRow(5, "Same"))

	got, err := repo.Update(context.Background(), 5, &Update{})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if *got.Title != "Same" {
		t.Fatalf("unexpected song: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+songs\s+SET\s+`).WillReturnError(sql.ErrNoRows)

	upd := &Update{Title: &sql.Null[string]{V: "x", Valid: true}}
	_, err := repo.Update(context.Background(), 99, upd)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+songs\s+WHERE\s+song_id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+songs\s+WHERE\s+song_id\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
