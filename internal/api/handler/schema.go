package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/infrastructure/repository"
	"github.com/vfg2006/askadb-query-engine/pkg/apiErrors"
)

// GetSchema retorna as colunas da tabela sales
func GetSchema(repo repository.SalesRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, err := repo.Schema(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar schema")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar schema", nil)
			return
		}

		writeJSON(w, http.StatusOK, schema)
	}
}
