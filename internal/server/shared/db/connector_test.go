package db

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls atomic.Int32
	err   error
}

func (f *fakeMigrator) RunMigrations(context.Context, *sql.DB) error {
	f.calls.Add(1)
	return f.err
}

func withOpen(t *testing.T, fn func(driver, dsn string) (*sql.DB, error)) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = fn
	t.Cleanup(func() { sqlOpen = orig })
}

func TestConn_OpensOnceUnderConcurrency(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	var opens atomic.Int32
	withOpen(t, func(driver, dsn string) (*sql.DB, error) {
		opens.Add(1)
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://x", dsn)
		return mockDB, nil
	})

	m := &fakeMigrator{}
	c := NewConnector("postgres://x", m)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Conn(context.Background())
			assert.NoError(t, err)
			assert.Same(t, mockDB, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
	assert.Equal(t, int32(1), m.calls.Load())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_OpenError(t *testing.T) {
	withOpen(t, func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") })

	c := NewConnector("x", nil)
	_, err := c.Conn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db open error")

	_, again := c.Conn(context.Background())
	assert.Equal(t, err, again)
	assert.NoError(t, c.Close())
}

func TestConn_PingError(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()
	withOpen(t, func(string, string) (*sql.DB, error) { return mockDB, nil })

	_, err = NewConnector("x", nil).Conn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
}

func TestConn_MigrationError(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()
	withOpen(t, func(string, string) (*sql.DB, error) { return mockDB, nil })

	_, err = NewConnector("x", &fakeMigrator{err: errors.New("boom")}).Conn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestClose_BeforeConn(t *testing.T) {
	var opens atomic.Int32
	withOpen(t, func(string, string) (*sql.DB, error) {
		opens.Add(1)
		return nil, errors.New("unexpected open")
	})

	c := NewConnector("x", nil)
	require.NoError(t, c.Close())

	_, err := c.Conn(context.Background())
	require.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, opens.Load())
}

func TestClose_WaitsForOpen(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	started := make(chan struct{})
	release := make(chan struct{})
	withOpen(t, func(string, string) (*sql.DB, error) {
		close(started)
		<-release
		return mockDB, nil
	})

	c := NewConnector("x", nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		got, err := c.Conn(context.Background())
		assert.NoError(t, err)
		assert.Same(t, mockDB, got)
	}()
	<-started
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Close())
	}()
	close(release)
	wg.Wait()

	require.NoError(t, mock.ExpectationsWereMet())
}
