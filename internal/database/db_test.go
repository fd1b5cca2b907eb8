package database_test

import (
	"context"
	"errors"
	"testing"

	"team-formation/internal/database"
	"team-formation/internal/database/postgres"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return postgres.Wrap(mock), mock
}

func TestWithTx_Commits(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE records").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := database.WithTx(context.Background(), db, func(q database.Querier) error {
		_, err := q.Exec(context.Background(), "UPDATE records SET position = 1")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBack(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := database.WithTx(context.Background(), db, func(database.Querier) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_JoinsRollbackFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("conn lost"))

	boom := errors.New("boom")
	err := database.WithTx(context.Background(), db, func(database.Querier) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "conn lost")
}

func TestWithTx_BeginFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := database.WithTx(context.Background(), db, func(database.Querier) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "too many connections")
	assert.False(t, called)
}
