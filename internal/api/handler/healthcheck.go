package handler

import (
	"net/http"
)

// HealthcheckHandler não consulta o banco: responde healthy mesmo que o
// arquivo tenha sido removido
func HealthcheckHandler(serviceName string) http.Handler {
	body := map[string]string{
		"status":  "healthy",
		"service": serviceName,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	})
}
