package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vfg2006/askadb-query-engine/infrastructure/database/sqlite"
	"github.com/vfg2006/askadb-query-engine/internal/config"
)

func newTestConnection(t *testing.T) *sqlite.Connection {
	t.Helper()

	conn, err := sqlite.NewConnection(context.Background(), config.Database{
		Path:         filepath.Join(t.TempDir(), "askadb.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func newBootstrappedConnection(t *testing.T) *sqlite.Connection {
	t.Helper()

	conn := newTestConnection(t)
	require.NoError(t, NewSalesRepository(conn).Bootstrap(context.Background()))

	return conn
}
