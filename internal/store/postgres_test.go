package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWithDB(mock), mock
}

func TestAddQuery(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO search_history (query) VALUES ($1)")).
		WithArgs("plumbers in brooklyn").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.AddQuery(context.Background(), "plumbers in brooklyn"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueries(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT query FROM search_history ORDER BY searched_at DESC, id DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"query"}).AddRow("newest").AddRow("older"))

	got, err := st.ListQueries(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "older"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueriesError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT query FROM search_history").
		WithArgs(3).
		WillReturnError(errors.New("connection refused"))

	_, err := st.ListQueries(context.Background(), 3)
	require.ErrorContains(t, err, "connection refused")
}

func TestPruneAndClearQueries(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM search_history WHERE id NOT IN").
		WithArgs(10).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM search_history").
		WillReturnResult(pgxmock.NewResult("DELETE", 8))

	require.NoError(t, st.PruneQueries(context.Background(), 10))
	require.NoError(t, st.ClearQueries(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSetting(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM app_settings WHERE key = $1")).
		WithArgs("history_limit").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte("25")))

	got, err := st.GetSetting(context.Background(), "history_limit")
	require.NoError(t, err)
	require.Equal(t, []byte("25"), got)
}

func TestGetSettingMissing(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT value FROM app_settings").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.GetSetting(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetSettingAndSchema(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS search_history").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO app_settings (key, value, description)")).
		WithArgs("history_limit", []byte("10"), "desc").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.EnsureSchema(context.Background()))
	require.NoError(t, st.SetSetting(context.Background(), "history_limit", []byte("10"), "desc"))
	require.NoError(t, mock.ExpectationsWereMet())
}
