package httpapi

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newHealthRouter(t *testing.T) (sqlmock.Sqlmock, *Server) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, NewServer(Services{}, db, []string{"http://localhost:5500"}, nopLogger{})
}

func TestHealthz_OK(t *testing.T) {
	mock, s := newHealthRouter(t)
	mock.ExpectPing()

	w := doRequest(t, s.Router(), http.MethodGet, "/api/healthz", nil, nil)

	if w.Code != http.StatusOK {
		t.Errorf("unexpected status: %d", w.Code)
	}
}

func TestHealthz_DBDown(t *testing.T) {
	mock, s := newHealthRouter(t)
	mock.ExpectPing().WillReturnError(errBoom)

	w := doRequest(t, s.Router(), http.MethodGet, "/api/healthz", nil, nil)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unexpected status: %d", w.Code)
	}
	if got := detailFrom(t, w); got != "Database unavailable" {
		t.Errorf("unexpected detail: %q", got)
	}
}
