// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/database/sqlite"
	"github.com/vfg2006/askadb-query-engine/internal/domain"
)

const createSalesTable = `
CREATE TABLE IF NOT EXISTS sales (
	id INTEGER PRIMARY KEY,
	region TEXT NOT NULL,
	product TEXT NOT NULL,
	month TEXT NOT NULL,
	sales_amount REAL NOT NULL,
	quantity INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

//go:generate mockgen -source=sales.go -destination=mocks/mock_sales.go -package=mocks

type SalesRepository interface {
	Bootstrap(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Schema(ctx context.Context) (*domain.TableSchema, error)
}

type salesRepository struct {
	conn *sqlite.Connection
}

func NewSalesRepository(conn *sqlite.Connection) SalesRepository {
	return &salesRepository{
		conn: conn,
	}
}

// Bootstrap cria a tabela sales se necessário e carrega os dados de exemplo
// apenas quando a tabela está vazia. Pode ser chamado a cada inicialização.
func (r *salesRepository) Bootstrap(ctx context.Context) error {
	logrus.WithField("path", r.conn.Path()).Info("Inicializando banco de dados")

	if _, err := r.conn.Exec(ctx, createSalesTable); err != nil {
		return errors.Wrap(err, "erro ao criar tabela sales")
	}
	logrus.Info("Tabelas inicializadas com sucesso")

	return r.conn.RunInTransaction(ctx, func(tx *sqlx.Tx) error {
		count, err := countSales(ctx, tx)
		if err != nil {
			return err
		}

		if count > 0 {
			logrus.WithField("rows", count).Info("Dados de exemplo já carregados, pulando carga")
			return nil
		}

		if err := insertSales(ctx, tx, domain.SampleSales); err != nil {
			return err
		}

		logrus.WithField("rows", len(domain.SampleSales)).Info("Dados de exemplo carregados com sucesso")
		return nil
	})
}

func (r *salesRepository) Count(ctx context.Context) (int, error) {
	return countSales(ctx, r.conn.DB)
}

func (r *salesRepository) Schema(ctx context.Context) (*domain.TableSchema, error) {
	columns := make([]domain.ColumnInfo, 0)

	err := r.conn.SelectContext(ctx, &columns, fmt.Sprintf("PRAGMA table_info(%s)", domain.SalesTable))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler schema da tabela sales")
	}

	return &domain.TableSchema{
		Table:   domain.SalesTable,
		Columns: columns,
	}, nil
}

func countSales(ctx context.Context, q sqlx.QueryerContext) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(domain.SalesTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, args...); err != nil {
		return 0, errors.Wrap(err, "erro ao contar registros de sales")
	}

	return count, nil
}

func insertSales(ctx context.Context, tx *sqlx.Tx, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(domain.SalesTable).
		Columns("region", "product", "month", "sales_amount", "quantity").
		PlaceholderFormat(squirrel.Question)

	for _, sale := range sales {
		query = query.Values(sale.Region, sale.Product, sale.Month, sale.SalesAmount, sale.Quantity)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir dados de exemplo")
	}

	return nil
}
