package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	results   Results
	err       error
	lastQuery string
	lastLimit int
}

func (s *stubStore) Search(_ context.Context, query string, limit int) (Results, error) {
	s.lastQuery = query
	s.lastLimit = limit
	return s.results, s.err
}

func TestHandlerEmptyQuery(t *testing.T) {
	st := &stubStore{}
	rr := httptest.NewRecorder()
	NewHandler(st).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?q=%20", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sections":[]}`, rr.Body.String())
	assert.Empty(t, st.lastQuery)
}

func TestHandlerGroupsSections(t *testing.T) {
	st := &stubStore{results: Results{
		Planets:    []Match{{ID: 1, Name: "Tierra"}},
		Characters: []Match{{ID: 4, Name: "Tiaan Jerjerrod", Description: "Moff"}},
	}}
	rr := httptest.NewRecorder()
	NewHandler(st).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?q=Tie&limit=500", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Tie", st.lastQuery)
	assert.Equal(t, maxLimit, st.lastLimit)

	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "planets", resp.Sections[0].Name)
	assert.Equal(t, "/planet/1", resp.Sections[0].Items[0].Href)
	assert.Equal(t, "/character/4", resp.Sections[1].Items[0].Href)
}

func TestHandlerStoreError(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHandler(&stubStore{err: errors.New("db down")}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"search failed"}`, rr.Body.String())
}

func TestSQLStoreSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := NewSQLStore(sqlx.NewDb(db, "pgx"))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM planets`)).
		WithArgs(`%50\%%`, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow(int64(2), "50% Moon", ""))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM characters`)).
		WithArgs(`%50\%%`, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	results, err := st.Search(context.Background(), "50%", 5)
	require.NoError(t, err)
	require.Len(t, results.Planets, 1)
	assert.Empty(t, results.Characters)
	assert.NoError(t, mock.ExpectationsWereMet())
}
