package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/askadb-query-engine/internal/domain"
	"github.com/vfg2006/askadb-query-engine/internal/usecases/querying"
	"github.com/vfg2006/askadb-query-engine/pkg/apiErrors"
)

// ExecuteQuery executa o SQL recebido e responde sempre 200 com o envelope;
// o campo success indica o resultado. Só um corpo inválido gera 400.
func ExecuteQuery(service querying.QueryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.QueryRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.Query == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O campo query é obrigatório", nil)
			return
		}

		startTime := time.Now()

		result, err := service.Execute(r.Context(), *req.Query)
		if err != nil {
			writeJSON(w, http.StatusOK, domain.NewErrorResponse(err.Error()))
			return
		}

		writeJSON(w, http.StatusOK, domain.NewSuccessResponse(result, time.Since(startTime).Milliseconds()))
	}
}
