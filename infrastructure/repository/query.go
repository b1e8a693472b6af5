package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/database/sqlite"
	"github.com/vfg2006/askadb-query-engine/internal/domain"
)

//go:generate mockgen -source=query.go -destination=mocks/mock_query.go -package=mocks

type QueryRepository interface {
	Execute(ctx context.Context, query string) (*domain.QueryResult, error)
}

type queryRepository struct {
	conn sqlite.Queryer
}

func NewQueryRepository(conn sqlite.Queryer) QueryRepository {
	return &queryRepository{
		conn: conn,
	}
}

// Execute roda o SQL recebido sem nenhuma validação e converte todas as linhas.
// O texto precisa ter exatamente um statement: vazio (ou só comentários) é uma
// consulta sem linhas, e mais de um é rejeitado com ErrMultipleStatements.
// Columns vem dos metadados do statement, mesmo quando nenhuma linha volta.
// Qualquer erro do driver aborta a chamada inteira; efeitos de DML já
// aplicados não são desfeitos.
func (r *queryRepository) Execute(ctx context.Context, query string) (*domain.QueryResult, error) {
	statements := sqlite.SplitStatements(query)
	switch len(statements) {
	case 0:
		return emptyResult(), nil
	case 1:
	default:
		return nil, errors.WithStack(sqlite.ErrMultipleStatements)
	}

	rows, err := r.conn.Query(ctx, statements[0])
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// DML e DDL sem RETURNING: um único passo executa o statement
	if len(columns) == 0 {
		rows.Next()
		if err := rows.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		return emptyResult(), nil
	}

	declTypes, err := declaredTypes(rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	result := &domain.QueryResult{
		Rows:    make([]domain.Row, 0),
		Columns: uniqueColumns(columns),
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.WithStack(err)
		}

		row := make(domain.Row, len(columns))
		for i, name := range columns {
			value, err := domain.NewColumnValue(values[i], declTypes[i])
			if err != nil {
				logrus.WithError(err).WithField("column", name).Warn("Falha ao converter valor da coluna, usando null")
			}
			row[name] = value
		}

		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}

func emptyResult() *domain.QueryResult {
	return &domain.QueryResult{
		Rows:    make([]domain.Row, 0),
		Columns: make([]string, 0),
	}
}

// declaredTypes devolve o tipo declarado de cada coluna, vazio para expressões
func declaredTypes(rows *sql.Rows) ([]string, error) {
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	declTypes := make([]string, len(columnTypes))
	for i, columnType := range columnTypes {
		declTypes[i] = columnType.DatabaseTypeName()
	}

	return declTypes, nil
}

// uniqueColumns remove nomes repetidos mantendo a primeira posição, já que a
// linha é um mapa e só guarda um valor por nome
func uniqueColumns(columns []string) []string {
	seen := make(map[string]struct{}, len(columns))
	unique := make([]string, 0, len(columns))

	for _, name := range columns {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}

	return unique
}
