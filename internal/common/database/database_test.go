// internal/common/database/database_test.go
package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"candidate-workers/internal/common/config"
	apperrors "candidate-workers/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestElasticsearch_Disabled(t *testing.T) {
	_, err := NewElasticsearch(config.ElasticsearchConfig{})
	assert.ErrorIs(t, err, ErrElasticsearchDisabled)
}

func TestElasticsearch_Ping(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	c, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))

	status = http.StatusServiceUnavailable
	assert.Error(t, c.Ping(context.Background()))
}

func TestPostgres_OpenIsLazy(t *testing.T) {
	c, err := NewPostgres(config.PostgresConfig{Host: "127.0.0.1", Port: 1, Database: "x", User: "x", SSLMode: "disable", MaxConnections: 2, MaxIdle: 1})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	assert.Equal(t, 2, c.DB.Stats().MaxOpenConnections)
}

func TestPostgres_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	c := &PostgresClient{DB: db}
	t.Cleanup(func() { c.Close() })

	mock.ExpectPing()
	require.NoError(t, c.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = c.Ping(context.Background())
	require.Error(t, err)
	std := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseConnectionFailed, std.Code)
	assert.True(t, apperrors.IsRetryableErrorCode(std.Code))
	assert.NoError(t, mock.ExpectationsWereMet())
}
