package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/askadb-query-engine/internal/config"
)

func newTestConnection(t *testing.T, path string) *Connection {
	t.Helper()

	conn, err := NewConnection(context.Background(), config.Database{Path: path, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestNewConnection_CriaDiretorio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "test.db")

	conn := newTestConnection(t, path)
	assert.Equal(t, path, conn.Path())

	_, err := conn.Exec(context.Background(), "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewConnection_UsaWAL(t *testing.T) {
	conn := newTestConnection(t, filepath.Join(t.TempDir(), "test.db"))

	var mode string
	require.NoError(t, conn.QueryRow(context.Background(), "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestNewConnection_CaminhoInvalido(t *testing.T) {
	// um arquivo comum no lugar do diretório impede a criação do banco
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewConnection(context.Background(), config.Database{Path: filepath.Join(blocker, "test.db")})
	assert.Error(t, err)
}

func TestConnection_RunInTransaction(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t, filepath.Join(t.TempDir(), "test.db"))

	_, err := conn.Exec(ctx, "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)

	tests := []struct {
		name          string
		fn            func(tx *sqlx.Tx) error
		expectedErr   bool
		expectedCount int
	}{
		{
			name: "Commit quando a função não retorna erro",
			fn: func(tx *sqlx.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO t (id) VALUES (1)")
				return err
			},
			expectedCount: 1,
		},
		{
			name: "Rollback quando a função retorna erro",
			fn: func(tx *sqlx.Tx) error {
				if _, err := tx.ExecContext(ctx, "INSERT INTO t (id) VALUES (2)"); err != nil {
					return err
				}
				return errors.New("falha")
			},
			expectedErr:   true,
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := conn.RunInTransaction(ctx, tt.fn)
			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			var count int
			require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM t").Scan(&count))
			assert.Equal(t, tt.expectedCount, count)
		})
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"file:data/askadb.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on",
		dsn(config.Database{Path: "data/askadb.db"}),
	)
	assert.Equal(t,
		"file:x.db?_journal_mode=WAL&_busy_timeout=100&_foreign_keys=on",
		dsn(config.Database{Path: "x.db", BusyTimeout: 100}),
	)
}
