package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/internal/config"
)

const driverName = "sqlite3"

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sqlx.Tx) error) error
}

// Connection é o pool compartilhado entre as requisições. O SQLite serializa
// as escritas internamente; o pool apenas limita quantas conexões ficam abertas.
type Connection struct {
	*sqlx.DB
	path string
}

var _ Conn = (*Connection)(nil)

func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	ensureParentDir(cfg.Path)

	db, err := sqlx.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir banco de dados %s", cfg.Path)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "erro ao conectar ao banco de dados %s", cfg.Path)
	}

	return &Connection{DB: db, path: cfg.Path}, nil
}

// Path retorna o caminho do arquivo do banco
func (c *Connection) Path() string {
	return c.path
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

func (c *Connection) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

func (c *Connection) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := c.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

func dsn(cfg config.Database) string {
	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}

	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on", cfg.Path, busyTimeout)
}

// ensureParentDir cria o diretório do arquivo do banco. Falhas são ignoradas:
// se o diretório realmente não existir, a abertura do banco falha logo em seguida.
func ensureParentDir(path string) {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.WithError(err).WithField("dir", dir).Debug("Não foi possível criar o diretório do banco")
	}
}
